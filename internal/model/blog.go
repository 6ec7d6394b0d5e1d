package model

import "time"

// Blog 博客模型
type Blog struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;comment:博客标识" json:"id"`
	OwnerID         int64     `gorm:"not null;index:idx_blogs_owner_id;comment:博主用户ID" json:"owner_id"`
	Name            string    `gorm:"size:100;not null;index:idx_blogs_name;comment:博客名称" json:"name"`
	Description     string    `gorm:"type:text;comment:博客简介" json:"description"`
	WebsiteURL      string    `gorm:"size:500;comment:博客站点地址" json:"website_url"`
	WallpaperURL    string    `gorm:"size:500;comment:博客壁纸地址" json:"wallpaper_url"`
	SubscriberCount int64     `gorm:"not null;default:0;comment:订阅人数" json:"subscriber_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_blogs_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Owner User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Posts []Post `gorm:"foreignKey:BlogID" json:"posts,omitempty"`
}

func (Blog) TableName() string {
	return "blogs"
}
