package api_router

import (
	"github.com/haierkeys/lifeframe-journal-service/internal/app"
	"github.com/haierkeys/lifeframe-journal-service/internal/dto"
	pkgapp "github.com/haierkeys/lifeframe-journal-service/pkg/app"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler 运行时设置 API 路由处理器
type SettingsHandler struct {
	*Handler
}

// NewSettingsHandler 创建 SettingsHandler 实例
func NewSettingsHandler(a *app.App) *SettingsHandler {
	return &SettingsHandler{Handler: NewHandler(a)}
}

// GetPrivateMode 查询私密模式状态
// @Summary 私密模式状态
// @Tags 设置
// @Produce json
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/settings/private-mode [get]
func (h *SettingsHandler) GetPrivateMode(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.Clone().WithData(gin.H{"enabled": h.App.IsPrivateMode()}))
}

// SetPrivateMode 设置私密模式开关
// 开启后章节视图仅返回元信息，不返回条目内容
// @Summary 设置私密模式
// @Tags 设置
// @Produce json
// @Param params body dto.PrivateModeRequest true "开关参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/settings/private-mode [post]
func (h *SettingsHandler) SetPrivateMode(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PrivateModeRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SettingsHandler.SetPrivateMode.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	enabled := h.App.SetPrivateMode(*params.Enabled)
	response.ToResponse(code.Success.Clone().WithData(gin.H{"enabled": enabled}))
}
