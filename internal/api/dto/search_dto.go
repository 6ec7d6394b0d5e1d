package dto

// SearchPostRequest 帖子搜索请求
type SearchPostRequest struct {
	Keyword  string `form:"keyword" binding:"required,min=1,max=100"`
	BlogID   *int64 `form:"blog_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SearchPostItem 搜索结果条目
type SearchPostItem struct {
	ID               int64   `json:"id"`
	BlogID           int64   `json:"blog_id"`
	BlogName         string  `json:"blog_name"`
	Title            string  `json:"title"`
	ShortDescription string  `json:"short_description"`
	LikesCount       int64   `json:"likes_count"`
	DislikesCount    int64   `json:"dislikes_count"`
	Score            float64 `json:"score,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// SearchPostData 搜索结果数据
type SearchPostData struct {
	Items      []SearchPostItem `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int64            `json:"total_pages"`
	Source     string           `json:"source"` // es 或 db
}
