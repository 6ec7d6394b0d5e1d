package repository

import (
	"errors"

	"plume-go/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// GetByUserAndParent 查询某用户对某目标的点赞记录
func (r *LikeRepository) GetByUserAndParent(userID, parentID int64, parentType model.ParentType) (*model.Like, error) {
	var like model.Like
	err := r.db.Where("user_id = ? AND parent_id = ? AND parent_type = ?", userID, parentID, parentType).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// ListByParent 查询某目标的全部点赞记录（含所有状态，无序）
func (r *LikeRepository) ListByParent(parentID int64, parentType model.ParentType) ([]model.Like, error) {
	var likes []model.Like
	err := r.db.Where("parent_id = ? AND parent_type = ?", parentID, parentType).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// ListNewestLikes 查询某目标最新的点赞记录（仅 Like 状态）
// 按首次点赞时间倒序，状态切换不影响排序
func (r *LikeRepository) ListNewestLikes(parentID int64, parentType model.ParentType, limit int) ([]model.Like, error) {
	var likes []model.Like
	err := r.db.Where("parent_id = ? AND parent_type = ? AND status = ?", parentID, parentType, model.StatusLike).
		Order("created_at DESC").Limit(limit).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// CountByStatus 统计某目标处于指定状态的记录数
func (r *LikeRepository) CountByStatus(parentID int64, parentType model.ParentType, status model.LikeStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("parent_id = ? AND parent_type = ? AND status = ?", parentID, parentType, status).
		Count(&count).Error
	return count, err
}

// UpsertStatus 写入点赞状态
// 无记录则新建；状态相同则不写库返回 false；否则只更新状态，CreatedAt 不变
// 记录永不删除，切回 None 仍保留行
func (r *LikeRepository) UpsertStatus(userID, parentID int64, parentType model.ParentType, status model.LikeStatus) (bool, error) {
	existing, err := r.GetByUserAndParent(userID, parentID, parentType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		like := &model.Like{
			UserID:     userID,
			ParentID:   parentID,
			ParentType: parentType,
			Status:     status,
		}
		if err := r.db.Create(like).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	if existing.Status == status {
		return false, nil
	}

	err = r.db.Model(&model.Like{}).Where("id = ?", existing.ID).
		Update("status", status).Error
	if err != nil {
		return false, err
	}
	return true, nil
}
