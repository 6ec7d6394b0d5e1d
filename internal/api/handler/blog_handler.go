package handler

import (
	"errors"
	"path"
	"strconv"
	"strings"

	"plume-go/internal/api/dto"
	"plume-go/internal/api/middleware"
	"plume-go/internal/api/response"
	"plume-go/internal/service"
	"plume-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreateBlog 创建博客
// @Summary 创建博客
// @Description 当前登录用户创建一个新博客
// @Tags 博客
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlogCreateRequest true "博客信息"
// @Success 201 {object} response.Response{data=dto.BlogInfo} "创建成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /blogs [post]
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req dto.BlogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.blogService.Create(currentUserID, &req)
	if err != nil {
		logger.Error("Create blog failed", zap.Error(err))
		response.InternalError(c, "创建博客失败")
		return
	}

	response.Created(c, "创建博客成功", info)
}

// GetBlog 获取博客详情
// @Summary 获取博客详情
// @Description 根据博客 ID 获取博客信息（公开）
// @Tags 博客
// @Produce json
// @Param id path int true "博客ID"
// @Success 200 {object} response.Response{data=dto.BlogInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "博客不存在"
// @Router /blogs/{id} [get]
func (h *BlogHandler) GetBlog(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	info, err := h.blogService.GetByID(blogID)
	if err != nil {
		handleBlogError(c, err)
		return
	}

	response.OK(c, "获取博客详情成功", info)
}

// ListBlogs 博客列表
// @Summary 博客列表
// @Description 分页获取博客列表，支持按名称搜索（公开）
// @Tags 博客
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param search query string false "名称模糊搜索"
// @Success 200 {object} response.Response{data=dto.BlogListData} "获取成功"
// @Router /blogs [get]
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var search *string
	if v := c.Query("search"); v != "" {
		search = &v
	}

	data, err := h.blogService.List(page, pageSize, search)
	if err != nil {
		logger.Error("List blogs failed", zap.Error(err))
		response.InternalError(c, "获取博客列表失败")
		return
	}

	response.OK(c, "获取博客列表成功", data)
}

// GetMyBlogs 获取我的博客列表
// @Summary 我的博客列表
// @Description 获取当前登录用户名下的博客
// @Tags 博客
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.BlogListData} "获取成功"
// @Router /blogs/my/list [get]
func (h *BlogHandler) GetMyBlogs(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.blogService.ListByOwner(currentUserID, page, pageSize)
	if err != nil {
		logger.Error("List my blogs failed", zap.Error(err))
		response.InternalError(c, "获取我的博客列表失败")
		return
	}

	response.OK(c, "获取我的博客列表成功", data)
}

// UpdateBlog 更新博客
// @Summary 更新博客
// @Description 更新博客信息，仅博主本人，改名会同步帖子上的博客名
// @Tags 博客
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "博客ID"
// @Param request body dto.BlogUpdateRequest true "更新信息"
// @Success 200 {object} response.Response{data=dto.BlogInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "博客不存在"
// @Router /blogs/{id} [put]
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	var req dto.BlogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.blogService.Update(blogID, currentUserID, &req)
	if err != nil {
		handleBlogError(c, err)
		return
	}

	response.OK(c, "更新博客成功", info)
}

// DeleteBlog 删除博客
// @Summary 删除博客
// @Description 删除博客，仅博主本人
// @Tags 博客
// @Produce json
// @Security BearerAuth
// @Param id path int true "博客ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "博客不存在"
// @Router /blogs/{id} [delete]
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.blogService.Delete(blogID, currentUserID); err != nil {
		handleBlogError(c, err)
		return
	}

	response.OK(c, "删除博客成功", nil)
}

// UploadWallpaper 上传博客壁纸
// @Summary 上传博客壁纸
// @Description 上传博客壁纸图片，仅博主本人，支持 jpg/jpeg/png/webp
// @Tags 博客
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "博客ID"
// @Param wallpaper formData file true "壁纸图片"
// @Success 200 {object} response.Response{data=dto.BlogInfo} "上传成功"
// @Failure 400 {object} response.ErrorResponse "文件无效"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /blogs/{id}/wallpaper [post]
func (h *BlogHandler) UploadWallpaper(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	file, err := c.FormFile("wallpaper")
	if err != nil {
		response.BadRequest(c, "请上传壁纸图片")
		return
	}

	allowedFormats := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if !allowedFormats[ext] {
		response.BadRequest(c, "不支持的图片格式，支持: jpg, jpeg, png, webp")
		return
	}

	maxSize := int64(10 * 1024 * 1024) // 10MB
	if file.Size > maxSize || file.Size == 0 {
		response.BadRequest(c, "文件大小无效（不能为空，最大 10MB）")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")

	info, err := h.blogService.UploadWallpaper(c.Request.Context(), blogID, currentUserID, file.Filename, f, file.Size, contentType)
	if err != nil {
		handleBlogError(c, err)
		return
	}

	response.OK(c, "上传壁纸成功", info)
}

func handleBlogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBlogNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrBlogNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Blog operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
