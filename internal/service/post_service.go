package service

import (
	"context"
	"errors"

	"plume-go/internal/api/dto"
	"plume-go/internal/config"
	infraKafka "plume-go/internal/infra/kafka"
	"plume-go/internal/model"
	"plume-go/internal/repository"
	"plume-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrPostNoPermission = errors.New("没有权限操作该帖子")
)

type PostService struct {
	postRepo    *repository.PostRepository
	blogRepo    *repository.BlogRepository
	likeService *LikeService
}

func NewPostService(postRepo *repository.PostRepository, blogRepo *repository.BlogRepository, likeService *LikeService) *PostService {
	return &PostService{postRepo: postRepo, blogRepo: blogRepo, likeService: likeService}
}

// Create 在博客下发布帖子（仅博主本人），博客名冗余进帖子
func (s *PostService) Create(userID, blogID int64, req *dto.PostCreateRequest) (*dto.PostInfo, error) {
	blog, err := s.blogRepo.GetByID(blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	if blog.OwnerID != userID {
		return nil, ErrBlogNoPermission
	}

	post := &model.Post{
		BlogID:           blogID,
		BlogName:         blog.Name,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.publishEvent(post, infraKafka.PostActionCreated)

	return s.toPostInfo(post, nil), nil
}

// GetByID 获取帖子详情，投影快照直接出自帖子行，MyStatus 按需查事实表
func (s *PostService) GetByID(postID int64, viewerID *int64) (*dto.PostInfo, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.toPostInfo(post, viewerID), nil
}

// Update 更新帖子（仅所属博客的博主）
func (s *PostService) Update(postID, userID int64, req *dto.PostUpdateRequest) (*dto.PostInfo, error) {
	post, err := s.getOwnedPost(postID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}

	if len(updates) == 0 {
		return s.toPostInfo(post, nil), nil
	}

	updated, err := s.postRepo.Update(postID, updates)
	if err != nil {
		return nil, err
	}

	s.publishEvent(updated, infraKafka.PostActionUpdated)

	return s.toPostInfo(updated, nil), nil
}

// Delete 删除帖子（仅所属博客的博主）
func (s *PostService) Delete(postID, userID int64) error {
	post, err := s.getOwnedPost(postID, userID)
	if err != nil {
		return err
	}

	if _, err := s.postRepo.Delete(postID); err != nil {
		return err
	}

	s.publishEvent(post, infraKafka.PostActionDeleted)

	return nil
}

// List 帖子分页列表（全站）
func (s *PostService) List(page, pageSize int, viewerID *int64) (*dto.PostListData, error) {
	skip := (page - 1) * pageSize
	posts, total, err := s.postRepo.List(skip, pageSize, nil, nil)
	if err != nil {
		return nil, err
	}
	return s.buildPostListData(posts, total, page, pageSize, viewerID), nil
}

// ListByBlog 获取博客下的帖子列表
func (s *PostService) ListByBlog(blogID int64, page, pageSize int, viewerID *int64) (*dto.PostListData, error) {
	if _, err := s.blogRepo.GetByID(blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	skip := (page - 1) * pageSize
	posts, total, err := s.postRepo.List(skip, pageSize, &blogID, nil)
	if err != nil {
		return nil, err
	}
	return s.buildPostListData(posts, total, page, pageSize, viewerID), nil
}

func (s *PostService) getOwnedPost(postID, userID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	blog, err := s.blogRepo.GetByID(post.BlogID)
	if err != nil {
		return nil, err
	}
	if blog.OwnerID != userID {
		return nil, ErrPostNoPermission
	}
	return post, nil
}

// publishEvent 发送帖子变更事件，供 worker 同步搜索索引和订阅通知
// 发送失败只记日志，不影响主流程
func (s *PostService) publishEvent(post *model.Post, action string) {
	topic := config.GetKafka().Topics["post_events"]
	if topic == "" {
		return
	}

	event := &infraKafka.PostEvent{
		PostID: post.ID,
		BlogID: post.BlogID,
		Action: action,
	}
	if err := infraKafka.SendPostEvent(context.Background(), topic, event); err != nil {
		logger.Error("Failed to publish post event",
			zap.Int64("post_id", post.ID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *PostService) toPostInfo(post *model.Post, viewerID *int64) *dto.PostInfo {
	myStatus, err := s.likeService.MyPostStatus(post.ID, viewerID)
	if err != nil {
		logger.Warn("Resolve my like status failed", zap.Int64("post_id", post.ID), zap.Error(err))
		myStatus = model.StatusNone
	}

	newest := make([]dto.NewestLikeInfo, 0, len(post.NewestLikes))
	for _, nl := range post.NewestLikes {
		newest = append(newest, dto.NewestLikeInfo{
			AddedAt: nl.AddedAt,
			UserID:  nl.UserID,
			Login:   nl.Login,
		})
	}

	return &dto.PostInfo{
		ID:               post.ID,
		BlogID:           post.BlogID,
		BlogName:         post.BlogName,
		Title:            post.Title,
		ShortDescription: post.ShortDescription,
		Content:          post.Content,
		LikesInfo: dto.ExtendedLikesInfo{
			LikesCount:    post.LikesCount,
			DislikesCount: post.DislikesCount,
			MyStatus:      string(myStatus),
			NewestLikes:   newest,
		},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func (s *PostService) buildPostListData(posts []model.Post, total int64, page, pageSize int, viewerID *int64) *dto.PostListData {
	items := make([]dto.PostInfo, 0, len(posts))
	for i := range posts {
		items = append(items, *s.toPostInfo(&posts[i], viewerID))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.PostListData{
		Posts:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
