package repository

import (
	"plume-go/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 根据 ID 查询用户（排除已删除）
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ? AND is_delete = 0", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDIncludeDeleted 根据 ID 查询用户（包含已删除，管理员用）
func (r *UserRepository) GetByIDIncludeDeleted(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByLogin 根据登录名查询用户（排除已删除）
func (r *UserRepository) GetByLogin(login string) (*model.User, error) {
	var user model.User
	err := r.db.Where("login = ? AND is_delete = 0", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户字段（传入 map，只更新非零值字段）
func (r *UserRepository) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByIDIncludeDeleted(id)
}

// ExistsByLogin 检查登录名是否已存在
func (r *UserRepository) ExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("login = ? AND is_delete = 0", login).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail 检查邮箱是否已存在
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ? AND is_delete = 0", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListWithFilters 带筛选条件的分页查询
func (r *UserRepository) ListWithFilters(skip, limit int, login, email, userRole *string) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{}).Where("is_delete = 0")

	if login != nil && *login != "" {
		query = query.Where("login ILIKE ?", "%"+*login+"%")
	}
	if email != nil && *email != "" {
		query = query.Where("email ILIKE ?", "%"+*email+"%")
	}
	if userRole != nil && *userRole != "" {
		query = query.Where("user_role = ?", *userRole)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetByIDs 批量查询用户
func (r *UserRepository) GetByIDs(ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.Where("id IN ? AND is_delete = 0", ids).Find(&users).Error
	return users, err
}
