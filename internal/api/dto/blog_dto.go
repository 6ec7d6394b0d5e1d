package dto

import "time"

// BlogCreateRequest 创建博客请求
type BlogCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	WebsiteURL  string `json:"website_url" binding:"omitempty,url,max=500"`
}

// BlogUpdateRequest 更新博客请求
type BlogUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	WebsiteURL  *string `json:"website_url" binding:"omitempty,url,max=500"`
}

// BlogInfo 博客信息
type BlogInfo struct {
	ID              int64     `json:"id"`
	OwnerID         int64     `json:"owner_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	WebsiteURL      string    `json:"website_url"`
	WallpaperURL    string    `json:"wallpaper_url"`
	SubscriberCount int64     `json:"subscriber_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BlogListData 博客列表数据
type BlogListData struct {
	Blogs      []BlogInfo `json:"blogs"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
