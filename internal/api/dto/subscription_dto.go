package dto

import "time"

// SubscriptionInfo 订阅关系信息
type SubscriptionInfo struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blog_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscribedBlogsData 用户订阅的博客列表数据
type SubscribedBlogsData struct {
	Blogs      []BlogInfo `json:"blogs"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
