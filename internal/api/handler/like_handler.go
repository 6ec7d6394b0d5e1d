package handler

import (
	"errors"
	"strconv"

	"plume-go/internal/api/dto"
	"plume-go/internal/api/middleware"
	"plume-go/internal/api/response"
	"plume-go/internal/model"
	"plume-go/internal/service"
	"plume-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// SetPostLikeStatus 设置帖子点赞状态
// @Summary 设置帖子点赞状态
// @Description 将当前用户对帖子的点赞状态设置为 None/Like/Dislike，幂等
// @Tags 点赞
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Param request body dto.LikeStatusRequest true "点赞状态"
// @Success 204 "设置成功"
// @Failure 400 {object} response.ErrorResponse "无效的点赞状态"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id}/like-status [put]
func (h *LikeHandler) SetPostLikeStatus(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的帖子ID")
		return
	}

	var req dto.LikeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.likeService.SetPostLikeStatus(currentUserID, postID, model.LikeStatus(req.LikeStatus)); err != nil {
		handleLikeError(c, err)
		return
	}

	response.NoContent(c)
}

// SetCommentLikeStatus 设置评论点赞状态
// @Summary 设置评论点赞状态
// @Description 将当前用户对评论的点赞状态设置为 None/Like/Dislike，幂等
// @Tags 点赞
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Param request body dto.LikeStatusRequest true "点赞状态"
// @Success 204 "设置成功"
// @Failure 400 {object} response.ErrorResponse "无效的点赞状态"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{id}/like-status [put]
func (h *LikeHandler) SetCommentLikeStatus(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.LikeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.likeService.SetCommentLikeStatus(currentUserID, commentID, model.LikeStatus(req.LikeStatus)); err != nil {
		handleLikeError(c, err)
		return
	}

	response.NoContent(c)
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLikeStatus):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Like operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
