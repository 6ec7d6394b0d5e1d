package handler

import (
	"errors"
	"strconv"

	"plume-go/internal/api/middleware"
	"plume-go/internal/api/response"
	"plume-go/internal/service"
	"plume-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Subscribe 订阅博客
// @Summary 订阅博客
// @Description 当前用户订阅指定博客
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "博客ID"
// @Success 201 {object} response.Response{data=dto.SubscriptionInfo} "订阅成功"
// @Failure 400 {object} response.ErrorResponse "已订阅过"
// @Failure 404 {object} response.ErrorResponse "博客不存在"
// @Router /blogs/{id}/subscription [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.subscriptionService.Subscribe(currentUserID, blogID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.Created(c, "订阅成功", info)
}

// Unsubscribe 取消订阅
// @Summary 取消订阅
// @Description 当前用户取消订阅指定博客
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "博客ID"
// @Success 200 {object} response.Response "取消订阅成功"
// @Failure 400 {object} response.ErrorResponse "尚未订阅"
// @Router /blogs/{id}/subscription [delete]
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.subscriptionService.Unsubscribe(currentUserID, blogID); err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "取消订阅成功", nil)
}

// GetStatus 查询订阅状态
// @Summary 查询订阅状态
// @Description 查询当前用户是否已订阅指定博客
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "博客ID"
// @Success 200 {object} response.Response "查询成功"
// @Failure 404 {object} response.ErrorResponse "博客不存在"
// @Router /blogs/{id}/subscription [get]
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	blogID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的博客ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	subscribed, err := h.subscriptionService.GetStatus(currentUserID, blogID)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "查询订阅状态成功", gin.H{
		"subscribed": subscribed,
	})
}

// GetMySubscriptions 我订阅的博客列表
// @Summary 我的订阅列表
// @Description 分页获取当前用户订阅的博客
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.SubscribedBlogsData} "获取成功"
// @Router /subscriptions/my/list [get]
func (h *SubscriptionHandler) GetMySubscriptions(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.subscriptionService.ListMyBlogs(currentUserID, page, pageSize)
	if err != nil {
		logger.Error("List my subscriptions failed", zap.Error(err))
		response.InternalError(c, "获取订阅列表失败")
		return
	}

	response.OK(c, "获取订阅列表成功", data)
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadySubscribed):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotSubscribed):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrBlogNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
