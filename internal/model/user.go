package model

import "time"

// User 用户模型
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Login     string    `gorm:"size:255;not null;uniqueIndex;comment:登录名" json:"login"`
	Email     string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	Password  string    `gorm:"size:255;not null;comment:密码" json:"-"` // json:"-" 序列化时忽略密码
	UserRole  string    `gorm:"size:256;not null;default:'user';comment:用户角色" json:"user_role"`
	IsDelete  int64     `gorm:"not null;default:0;comment:删除标识" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`

	// 关联关系
	Blogs    []Blog    `gorm:"foreignKey:OwnerID" json:"blogs,omitempty"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:UserID" json:"likes,omitempty"`
}

func (User) TableName() string {
	return "users"
}
