package middleware

import (
	"strings"

	"github.com/haierkeys/lifeframe-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// Lang 按请求切换错误消息语言
func Lang() gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}

		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))
		if lang != "" {
			code.SetLanguage(lang)
		}

		c.Next()
	}
}
