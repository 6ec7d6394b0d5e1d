package dto

import "time"

// PostCreateRequest 发布帖子请求
type PostCreateRequest struct {
	Title            string `json:"title" binding:"required,min=1,max=200"`
	ShortDescription string `json:"short_description" binding:"omitempty,max=500"`
	Content          string `json:"content" binding:"required,min=1"`
}

// PostUpdateRequest 更新帖子请求
type PostUpdateRequest struct {
	Title            *string `json:"title" binding:"omitempty,min=1,max=200"`
	ShortDescription *string `json:"short_description" binding:"omitempty,max=500"`
	Content          *string `json:"content" binding:"omitempty,min=1"`
}

// PostInfo 帖子信息
type PostInfo struct {
	ID               int64             `json:"id"`
	BlogID           int64             `json:"blog_id"`
	BlogName         string            `json:"blog_name"`
	Title            string            `json:"title"`
	ShortDescription string            `json:"short_description"`
	Content          string            `json:"content"`
	LikesInfo        ExtendedLikesInfo `json:"likes_info"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// PostListData 帖子列表数据
type PostListData struct {
	Posts      []PostInfo `json:"posts"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
