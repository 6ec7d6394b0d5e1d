package model

import (
	"time"

	"gorm.io/datatypes"
)

// NewestLike 帖子投影中缓存的最新点赞条目
type NewestLike struct {
	AddedAt time.Time `json:"added_at"`
	UserID  int64     `json:"user_id"`
	Login   string    `json:"login"`
}

// Post 帖子模型
// LikesCount / DislikesCount / NewestLikes 是点赞投影字段，
// 每次点赞状态变更后由聚合结果整体覆盖，绝不增量修补
type Post struct {
	ID               int64                           `gorm:"primaryKey;autoIncrement;comment:帖子标识" json:"id"`
	BlogID           int64                           `gorm:"not null;index:idx_posts_blog_id;comment:所属博客ID" json:"blog_id"`
	BlogName         string                          `gorm:"size:100;not null;comment:博客名称冗余" json:"blog_name"`
	Title            string                          `gorm:"size:200;not null;comment:帖子标题" json:"title"`
	ShortDescription string                          `gorm:"size:500;comment:帖子摘要" json:"short_description"`
	Content          string                          `gorm:"type:text;not null;comment:帖子正文" json:"content"`
	LikesCount       int64                           `gorm:"not null;default:0;comment:点赞数快照" json:"likes_count"`
	DislikesCount    int64                           `gorm:"not null;default:0;comment:点踩数快照" json:"dislikes_count"`
	NewestLikes      datatypes.JSONSlice[NewestLike] `gorm:"type:jsonb;comment:最新点赞用户快照" json:"newest_likes"`
	CreatedAt        time.Time                       `gorm:"autoCreateTime;index:idx_posts_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt        time.Time                       `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Blog     Blog      `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
