package dto

import "time"

// LikeStatusRequest 设置点赞状态请求
type LikeStatusRequest struct {
	LikeStatus string `json:"like_status" binding:"required,oneof=None Like Dislike"`
}

// LikesInfo 评论点赞视图（读取时实时聚合）
type LikesInfo struct {
	LikesCount    int64  `json:"likes_count"`
	DislikesCount int64  `json:"dislikes_count"`
	MyStatus      string `json:"my_status"`
}

// NewestLikeInfo 最新点赞条目
type NewestLikeInfo struct {
	AddedAt time.Time `json:"added_at"`
	UserID  int64     `json:"user_id"`
	Login   string    `json:"login"`
}

// ExtendedLikesInfo 帖子点赞视图（计数和最新点赞来自投影快照）
type ExtendedLikesInfo struct {
	LikesCount    int64            `json:"likes_count"`
	DislikesCount int64            `json:"dislikes_count"`
	MyStatus      string           `json:"my_status"`
	NewestLikes   []NewestLikeInfo `json:"newest_likes"`
}
