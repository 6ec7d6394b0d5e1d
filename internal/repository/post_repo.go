package repository

import (
	"plume-go/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 更新帖子字段（传入 map）
func (r *PostRepository) Update(id int64, updates map[string]interface{}) (*model.Post, error) {
	result := r.db.Model(&model.Post{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

func (r *PostRepository) Delete(id int64) (bool, error) {
	result := r.db.Delete(&model.Post{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 帖子分页列表（支持按博客筛选和标题模糊搜索）
func (r *PostRepository) List(skip, limit int, blogID *int64, search *string) ([]model.Post, int64, error) {
	query := r.db.Model(&model.Post{})

	if blogID != nil {
		query = query.Where("blog_id = ?", *blogID)
	}
	if search != nil && *search != "" {
		query = query.Where("title ILIKE ? OR short_description ILIKE ?", "%"+*search+"%", "%"+*search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdateLikesProjection 整体覆盖帖子的点赞投影快照
// 三个字段一次写入，不做增量修补
func (r *PostRepository) UpdateLikesProjection(id int64, likesCount, dislikesCount int64, newestLikes []model.NewestLike) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"likes_count":    likesCount,
		"dislikes_count": dislikesCount,
		"newest_likes":   datatypes.NewJSONSlice(newestLikes),
	}).Error
}

// UpdateBlogName 同步博客改名后的冗余字段
func (r *PostRepository) UpdateBlogName(blogID int64, blogName string) error {
	return r.db.Model(&model.Post{}).Where("blog_id = ?", blogID).
		UpdateColumn("blog_name", blogName).Error
}
