package repository

import (
	"plume-go/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(blogID, userID int64) (*model.Subscription, error) {
	sub := &model.Subscription{BlogID: blogID, UserID: userID}
	if err := r.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *SubscriptionRepository) Delete(blogID, userID int64) (bool, error) {
	result := r.db.Where("blog_id = ? AND user_id = ?", blogID, userID).Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SubscriptionRepository) Exists(blogID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).Count(&count).Error
	return count > 0, err
}

// ListSubscriberIDs 获取博客的订阅用户 ID 列表
func (r *SubscriptionRepository) ListSubscriberIDs(blogID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Subscription{}).Where("blog_id = ?", blogID).
		Order("created_at ASC").Pluck("user_id", &ids).Error
	return ids, err
}

// ListBlogIDsByUser 获取用户订阅的博客 ID 列表
func (r *SubscriptionRepository) ListBlogIDsByUser(userID int64, skip, limit int) ([]int64, int64, error) {
	query := r.db.Model(&model.Subscription{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Pluck("blog_id", &ids).Error
	return ids, total, err
}
