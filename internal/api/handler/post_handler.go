package handler

import (
	"errors"
	"strconv"

	"plume-go/internal/api/dto"
	"plume-go/internal/api/middleware"
	"plume-go/internal/api/response"
	"plume-go/internal/service"
	"plume-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost 在博客下发布帖子
// @Summary 发布帖子
// @Description 在指定博客下发布帖子，仅博主本人
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "博客ID"
// @Param request body dto.PostCreateRequest true "帖子信息"
// @Success 201 {object} response.Response{data=dto.PostInfo} "发布成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "博客不存在"
// @Router /blogs/{id}/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	var req dto.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.postService.Create(currentUserID, blogID, &req)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.Created(c, "发布帖子成功", info)
}

// GetPost 获取帖子详情
// @Summary 获取帖子详情
// @Description 获取帖子详情，含点赞投影快照；登录用户返回自己的点赞状态
// @Tags 帖子
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=dto.PostInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	info, err := h.postService.GetByID(postID, middleware.CurrentUserIDPtr(c))
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "获取帖子详情成功", info)
}

// ListPosts 帖子列表
// @Summary 帖子列表
// @Description 全站帖子分页列表（公开）
// @Tags 帖子
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.PostListData} "获取成功"
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.postService.List(page, pageSize, middleware.CurrentUserIDPtr(c))
	if err != nil {
		logger.Error("List posts failed", zap.Error(err))
		response.InternalError(c, "获取帖子列表失败")
		return
	}

	response.OK(c, "获取帖子列表成功", data)
}

// ListBlogPosts 获取博客下的帖子列表
// @Summary 博客帖子列表
// @Description 获取指定博客下的帖子分页列表（公开）
// @Tags 帖子
// @Produce json
// @Param id path int true "博客ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.PostListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "博客不存在"
// @Router /blogs/{id}/posts [get]
func (h *PostHandler) ListBlogPosts(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	page, pageSize := parsePagination(c)

	data, err := h.postService.ListByBlog(blogID, page, pageSize, middleware.CurrentUserIDPtr(c))
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "获取博客帖子列表成功", data)
}

// UpdatePost 更新帖子
// @Summary 更新帖子
// @Description 更新帖子内容，仅所属博客的博主
// @Tags 帖子
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Param request body dto.PostUpdateRequest true "更新信息"
// @Success 200 {object} response.Response{data=dto.PostInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	var req dto.PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.postService.Update(postID, currentUserID, &req)
	if err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "更新帖子成功", info)
}

// DeletePost 删除帖子
// @Summary 删除帖子
// @Description 删除帖子，仅所属博客的博主
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.postService.Delete(postID, currentUserID); err != nil {
		handlePostError(c, err)
		return
	}

	response.OK(c, "删除帖子成功", nil)
}

func handlePostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrBlogNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrPostNoPermission), errors.Is(err, service.ErrBlogNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Post operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
