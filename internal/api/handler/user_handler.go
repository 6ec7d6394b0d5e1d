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

type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// GetUser 获取用户信息
// @Summary 获取用户信息
// @Description 根据用户 ID 获取用户公开信息
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userInfo, err := h.userService.GetUserByID(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户信息成功", userInfo)
}

// UpdateUser 更新用户信息（本人或管理员）
// @Summary 更新用户信息
// @Description 更新登录名或邮箱，仅限本人或管理员
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.UserUpdateRequest true "更新信息"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)
	currentUser, err := h.authService.GetCurrentUser(currentUserID)
	if err != nil {
		response.Unauthorized(c, "无法获取当前用户信息")
		return
	}

	userInfo, err := h.userService.UpdateUser(targetID, currentUser, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新用户信息成功", userInfo)
}

// ListUsers 用户列表（管理员）
// @Summary 用户列表
// @Description 分页查询用户，支持按登录名/邮箱/角色筛选，仅限管理员
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param login query string false "登录名模糊匹配"
// @Param email query string false "邮箱模糊匹配"
// @Param user_role query string false "用户角色"
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Failure 403 {object} response.ErrorResponse "需要管理员权限"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var login, email, userRole *string
	if v := c.Query("login"); v != "" {
		login = &v
	}
	if v := c.Query("email"); v != "" {
		email = &v
	}
	if v := c.Query("user_role"); v != "" {
		userRole = &v
	}

	data, err := h.userService.ListUsers(page, pageSize, login, email, userRole)
	if err != nil {
		logger.Error("List users failed", zap.Error(err))
		response.InternalError(c, "获取用户列表失败")
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// DeleteUser 删除用户（管理员，软删除）
// @Summary 删除用户
// @Description 软删除用户，该用户此后在点赞列表中显示为 Unknown
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	if err := h.userService.SoftDeleteUser(userID); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "删除用户成功", nil)
}

// RestoreUser 恢复用户（管理员）
// @Summary 恢复用户
// @Description 恢复已软删除的用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response "恢复成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id}/restore [post]
func (h *UserHandler) RestoreUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	if err := h.userService.RestoreUser(userID); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "恢复用户成功", nil)
}

// SetAdmin 设置管理员角色（管理员）
// @Summary 设置管理员
// @Description 将目标用户角色设置为 admin
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserInfo} "设置成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id}/set-admin [post]
func (h *UserHandler) SetAdmin(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userInfo, err := h.userService.SetAdminRole(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "设置管理员成功", userInfo)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrLoginExists), errors.Is(err, service.ErrEmailExists):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
