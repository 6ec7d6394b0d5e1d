package service

import (
	"errors"

	"plume-go/internal/api/dto"
	"plume-go/internal/model"
	"plume-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentNoPermission = errors.New("没有权限操作该评论")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	likeService *LikeService
}

func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository, likeService *LikeService) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, likeService: likeService}
}

// Create 在帖子下发表评论
func (s *CommentService) Create(userID, postID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return s.toCommentInfo(comment, &userID)
}

// GetByID 获取单条评论，点赞视图实时聚合
func (s *CommentService) GetByID(commentID int64, viewerID *int64) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByIDWithUser(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	info, err := s.toCommentInfo(comment, viewerID)
	if err != nil {
		return nil, err
	}
	if comment.User.ID != 0 {
		info.Login = &comment.User.Login
	}
	return info, nil
}

// Update 更新评论（仅作者本人，他人操作返回无权限）
func (s *CommentService) Update(commentID, userID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrCommentNoPermission
	}

	if err := s.commentRepo.UpdateContent(commentID, req.Content); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	return s.toCommentInfo(updated, &userID)
}

// Delete 删除评论（仅作者本人）
func (s *CommentService) Delete(commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrCommentNoPermission
	}

	_, err = s.commentRepo.Delete(commentID)
	return err
}

// ListByPost 获取帖子的评论列表，每条评论都带实时聚合的点赞视图
func (s *CommentService) ListByPost(postID int64, viewerID *int64, page, pageSize int) (*dto.CommentListData, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListByPost(postID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	return s.buildCommentListData(comments, total, page, pageSize, viewerID, false)
}

// ListByUser 获取用户的评论列表
func (s *CommentService) ListByUser(userID int64, page, pageSize int) (*dto.CommentListData, error) {
	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListByUser(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	return s.buildCommentListData(comments, total, page, pageSize, &userID, true)
}

func (s *CommentService) buildCommentListData(comments []model.Comment, total int64, page, pageSize int, viewerID *int64, includePostTitle bool) (*dto.CommentListData, error) {
	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		info, err := s.toCommentInfo(&comments[i], viewerID)
		if err != nil {
			return nil, err
		}

		if comments[i].User.ID != 0 {
			info.Login = &comments[i].User.Login
		}
		if includePostTitle && comments[i].Post.ID != 0 {
			info.PostTitle = &comments[i].Post.Title
		}

		items = append(items, *info)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.CommentListData{
		Comments:   items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *CommentService) toCommentInfo(c *model.Comment, viewerID *int64) (*dto.CommentInfo, error) {
	likesInfo, err := s.likeService.CommentLikesInfo(c.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.CommentInfo{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		LikesInfo: *likesInfo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}
