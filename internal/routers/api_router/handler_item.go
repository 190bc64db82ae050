package api_router

import (
	"github.com/haierkeys/lifeframe-journal-service/internal/app"
	"github.com/haierkeys/lifeframe-journal-service/internal/dto"
	pkgapp "github.com/haierkeys/lifeframe-journal-service/pkg/app"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"
	apperrors "github.com/haierkeys/lifeframe-journal-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemHandler 条目 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type ItemHandler struct {
	*Handler
}

// NewItemHandler 创建 ItemHandler 实例
func NewItemHandler(a *app.App) *ItemHandler {
	return &ItemHandler{Handler: NewHandler(a)}
}

// CreateText 新增纯文本条目
// @Summary 新增文本条目
// @Description 向指定章节（缺省为今日章节）新增一条文本记录
// @Tags 条目
// @Produce json
// @Param params body dto.ItemTextCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.ItemDTO} "成功"
// @Router /api/items/text [post]
func (h *ItemHandler) CreateText(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemTextCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ItemHandler.CreateText.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	item, err := h.App.EntryService.AddTextItem(ctx, c.Query("chapterId"), params.Text)
	if err != nil {
		h.logError(ctx, "ItemHandler.CreateText", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(item))
}

// CreateMedia 新增纯媒体条目
// @Summary 新增媒体条目
// @Description 新增仅含附件的记录，最多 3 张图片或 1 条语音
// @Tags 条目
// @Produce json
// @Param params body dto.ItemMediaCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.ItemDTO} "成功"
// @Router /api/items/media [post]
func (h *ItemHandler) CreateMedia(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemMediaCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ItemHandler.CreateMedia.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	item, err := h.App.EntryService.AddMediaItem(ctx, c.Query("chapterId"), params.Media)
	if err != nil {
		h.logError(ctx, "ItemHandler.CreateMedia", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(item))
}

// CreateTextMedia 新增图文条目
// @Summary 新增图文条目
// @Description 新增同时包含文本与图片的记录
// @Tags 条目
// @Produce json
// @Param params body dto.ItemTextMediaCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.ItemDTO} "成功"
// @Router /api/items/text-media [post]
func (h *ItemHandler) CreateTextMedia(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemTextMediaCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ItemHandler.CreateTextMedia.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	item, err := h.App.EntryService.AddTextAndMediaItem(ctx, c.Query("chapterId"), params.Text, params.Media)
	if err != nil {
		h.logError(ctx, "ItemHandler.CreateTextMedia", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(item))
}

// Modify 编辑条目文本
// @Summary 编辑条目
// @Description 修改文本条目的内容，非文本条目不可编辑
// @Tags 条目
// @Produce json
// @Param id path string true "条目 ID"
// @Param params body dto.ItemModifyRequest true "编辑参数"
// @Success 200 {object} pkgapp.Res{data=dto.ItemDTO} "成功"
// @Router /api/items/{id} [put]
func (h *ItemHandler) Modify(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemModifyRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ItemHandler.Modify.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	item, err := h.App.EntryService.EditItem(ctx, c.Param("id"), params.Text)
	if err != nil {
		h.logError(ctx, "ItemHandler.Modify", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(item))
}

// Delete 删除条目
// @Summary 删除条目
// @Description 删除条目及其附件，空置且非当日的章节随之销毁；幂等
// @Tags 条目
// @Produce json
// @Param id path string true "条目 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()

	if err := h.App.EntryService.DeleteItem(ctx, c.Param("id")); err != nil {
		h.logError(ctx, "ItemHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// DeleteAll 清空章节下全部条目
// @Summary 清空章节条目
// @Description 删除章节内全部条目与附件，章节本身保留
// @Tags 条目
// @Produce json
// @Param id path string true "章节 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/chapters/{id}/items [delete]
func (h *ItemHandler) DeleteAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()

	if err := h.App.EntryService.DeleteAllItems(ctx, c.Param("id")); err != nil {
		h.logError(ctx, "ItemHandler.DeleteAll", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
