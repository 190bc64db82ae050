package middleware

import (
	"github.com/haierkeys/lifeframe-journal-service/pkg/app"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 404 handler
// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
