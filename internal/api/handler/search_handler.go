package handler

import (
	"plume-go/internal/api/dto"
	"plume-go/internal/api/response"
	"plume-go/internal/service"
	"plume-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchPosts 搜索帖子
// @Summary 搜索帖子
// @Description 按关键词全文搜索帖子，支持按博客过滤；ES 不可用时降级到数据库模糊匹配
// @Tags 搜索
// @Produce json
// @Param keyword query string true "搜索关键词"
// @Param blog_id query int false "博客ID过滤"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.SearchPostData} "搜索成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /search/posts [get]
func (h *SearchHandler) SearchPosts(c *gin.Context) {
	var req dto.SearchPostRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchPosts(&req)
	if err != nil {
		logger.Error("Search posts failed", zap.Error(err))
		response.InternalError(c, "搜索失败，请稍后重试")
		return
	}

	response.OK(c, "搜索成功", data)
}
