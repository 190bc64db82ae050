package api_router

import (
	"github.com/haierkeys/lifeframe-journal-service/internal/app"
	pkgapp "github.com/haierkeys/lifeframe-journal-service/pkg/app"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"
	"github.com/haierkeys/lifeframe-journal-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// VersionHandler 版本信息 API 路由处理器
type VersionHandler struct {
	*Handler
}

// NewVersionHandler 创建 VersionHandler 实例
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{Handler: NewHandler(a)}
}

// ServerVersion 获取服务端版本号
// @Summary 服务端版本
// @Tags 版本
// @Produce json
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	data := map[string]interface{}{}
	if err := convert.StructToMap(app.GetVersionInfo(), data); err != nil {
		response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success.Clone().WithData(data))
}
