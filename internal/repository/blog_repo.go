package repository

import (
	"plume-go/internal/model"

	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(blog *model.Blog) error {
	return r.db.Create(blog).Error
}

func (r *BlogRepository) GetByID(id int64) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.First(&blog, id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepository) GetByIDWithOwner(id int64) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.Preload("Owner").First(&blog, id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Update 更新博客字段（传入 map）
func (r *BlogRepository) Update(id int64, updates map[string]interface{}) (*model.Blog, error) {
	result := r.db.Model(&model.Blog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

func (r *BlogRepository) Delete(id int64) (bool, error) {
	result := r.db.Delete(&model.Blog{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 博客分页列表（支持名称模糊搜索）
func (r *BlogRepository) List(skip, limit int, search *string) ([]model.Blog, int64, error) {
	query := r.db.Model(&model.Blog{})

	if search != nil && *search != "" {
		query = query.Where("name ILIKE ?", "%"+*search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []model.Blog
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListByOwner 获取博主名下的博客列表
func (r *BlogRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Blog, int64, error) {
	query := r.db.Model(&model.Blog{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []model.Blog
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// IncrementSubscriberCount 订阅数 +1
func (r *BlogRepository) IncrementSubscriberCount(id int64) error {
	return r.db.Model(&model.Blog{}).Where("id = ?", id).
		UpdateColumn("subscriber_count", gorm.Expr("subscriber_count + 1")).Error
}

// DecrementSubscriberCount 订阅数 -1（不低于 0）
func (r *BlogRepository) DecrementSubscriberCount(id int64) error {
	return r.db.Model(&model.Blog{}).Where("id = ? AND subscriber_count > 0", id).
		UpdateColumn("subscriber_count", gorm.Expr("subscriber_count - 1")).Error
}
