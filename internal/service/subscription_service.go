package service

import (
	"errors"

	"plume-go/internal/api/dto"
	"plume-go/internal/model"
	"plume-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadySubscribed = errors.New("您已经订阅过该博客了")
	ErrNotSubscribed     = errors.New("您尚未订阅该博客")
)

type SubscriptionService struct {
	subscriptionRepo *repository.SubscriptionRepository
	blogRepo         *repository.BlogRepository
}

func NewSubscriptionService(subscriptionRepo *repository.SubscriptionRepository, blogRepo *repository.BlogRepository) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo, blogRepo: blogRepo}
}

// Subscribe 订阅博客
func (s *SubscriptionService) Subscribe(userID, blogID int64) (*dto.SubscriptionInfo, error) {
	if _, err := s.blogRepo.GetByID(blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	exists, err := s.subscriptionRepo.Exists(blogID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	sub, err := s.subscriptionRepo.Create(blogID, userID)
	if err != nil {
		return nil, err
	}

	_ = s.blogRepo.IncrementSubscriberCount(blogID)

	return toSubscriptionInfo(sub), nil
}

// Unsubscribe 取消订阅
func (s *SubscriptionService) Unsubscribe(userID, blogID int64) error {
	deleted, err := s.subscriptionRepo.Delete(blogID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotSubscribed
	}

	_ = s.blogRepo.DecrementSubscriberCount(blogID)

	return nil
}

// GetStatus 查询订阅状态
func (s *SubscriptionService) GetStatus(userID, blogID int64) (bool, error) {
	if _, err := s.blogRepo.GetByID(blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBlogNotFound
		}
		return false, err
	}

	return s.subscriptionRepo.Exists(blogID, userID)
}

// ListMyBlogs 获取用户订阅的博客列表
func (s *SubscriptionService) ListMyBlogs(userID int64, page, pageSize int) (*dto.SubscribedBlogsData, error) {
	skip := (page - 1) * pageSize
	blogIDs, total, err := s.subscriptionRepo.ListBlogIDsByUser(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BlogInfo, 0, len(blogIDs))
	for _, id := range blogIDs {
		blog, err := s.blogRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, *toBlogInfo(blog))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.SubscribedBlogsData{
		Blogs:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func toSubscriptionInfo(sub *model.Subscription) *dto.SubscriptionInfo {
	return &dto.SubscriptionInfo{
		ID:        sub.ID,
		BlogID:    sub.BlogID,
		UserID:    sub.UserID,
		CreatedAt: sub.CreatedAt,
	}
}
