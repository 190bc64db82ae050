package api_router

import (
	"github.com/haierkeys/lifeframe-journal-service/internal/app"
	"github.com/haierkeys/lifeframe-journal-service/internal/dto"
	"github.com/haierkeys/lifeframe-journal-service/internal/search"
	pkgapp "github.com/haierkeys/lifeframe-journal-service/pkg/app"
	"github.com/haierkeys/lifeframe-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler 搜索 API 路由处理器
// 每次请求等价于一次按键输入：记录搜索词并返回当前投影
type SearchHandler struct {
	*Handler
}

// NewSearchHandler 创建 SearchHandler 实例
func NewSearchHandler(a *app.App) *SearchHandler {
	return &SearchHandler{Handler: NewHandler(a)}
}

// Search 搜索章节
// @Summary 搜索
// @Description 记录一次按键输入并返回当前投影；防抖期间返回上一次完成的结果
// @Tags 搜索
// @Produce json
// @Param q query string false "搜索词"
// @Success 200 {object} pkgapp.Res{data=dto.SearchProjectionDTO} "成功"
// @Router /api/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SearchRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SearchHandler.Search.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	h.App.Search.SetTerm(params.Q)

	result := &dto.SearchProjectionDTO{
		Term:      h.App.Search.Term(),
		Filtering: h.App.Search.State() == search.StateFiltering,
		Chapters:  dto.ToChapterDTOList(h.App.Search.Projection(), h.App.IsPrivateMode()),
	}

	response.ToResponse(code.Success.Clone().WithData(result))
}
