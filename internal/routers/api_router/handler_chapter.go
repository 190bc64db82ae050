package api_router

import (
	"github.com/haierkeys/lifeframe-journal-service/internal/app"
	"github.com/haierkeys/lifeframe-journal-service/internal/dto"
	pkgapp "github.com/haierkeys/lifeframe-journal-service/pkg/app"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"
	apperrors "github.com/haierkeys/lifeframe-journal-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ChapterHandler 章节 API 路由处理器
type ChapterHandler struct {
	*Handler
}

// NewChapterHandler 创建 ChapterHandler 实例
func NewChapterHandler(a *app.App) *ChapterHandler {
	return &ChapterHandler{Handler: NewHandler(a)}
}

// List 获取全部章节
// @Summary 章节列表
// @Description 按日期升序返回全部章节及其条目
// @Tags 章节
// @Produce json
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes} "成功"
// @Router /api/chapters [get]
func (h *ChapterHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()

	chapters, err := h.App.ChapterService.List(ctx)
	if err != nil {
		h.logError(ctx, "ChapterHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	list := dto.ToChapterDTOList(chapters, h.App.IsPrivateMode())
	response.ToResponseList(code.Success.Clone(), list, len(list))
}

// Current 获取当前章节
// @Summary 当前章节
// @Description 返回最近的章节；尚无章节时返回未持久化的今日新章节
// @Tags 章节
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.ChapterDTO} "成功"
// @Router /api/chapters/current [get]
func (h *ChapterHandler) Current(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()

	chapter, err := h.App.ChapterService.Current(ctx)
	if err != nil {
		h.logError(ctx, "ChapterHandler.Current", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(dto.ToChapterDTO(chapter, h.App.IsPrivateMode())))
}

// Delete 删除章节
// @Summary 删除章节
// @Description 级联删除章节、条目与附件内容；幂等
// @Tags 章节
// @Produce json
// @Param id path string true "章节 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/chapters/{id} [delete]
func (h *ChapterHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()

	if err := h.App.ChapterService.Delete(ctx, c.Param("id")); err != nil {
		h.logError(ctx, "ChapterHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Activity 获取记录活跃度
// @Summary 记录活跃度
// @Description 返回距最近一次记录的天数以及是否长时间未记录
// @Tags 章节
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.ActivityStatusDTO} "成功"
// @Router /api/activity [get]
func (h *ChapterHandler) Activity(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()

	status, err := h.App.ChapterService.ActivityStatus(ctx)
	if err != nil {
		h.logError(ctx, "ChapterHandler.Activity", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(status))
}
