package model

import "time"

// ParentType 点赞目标类型
type ParentType string

const (
	ParentPost    ParentType = "post"
	ParentComment ParentType = "comment"
)

// Valid 判断目标类型是否合法
func (p ParentType) Valid() bool {
	switch p {
	case ParentPost, ParentComment:
		return true
	}
	return false
}

// LikeStatus 点赞状态
type LikeStatus string

const (
	StatusNone    LikeStatus = "None"
	StatusLike    LikeStatus = "Like"
	StatusDislike LikeStatus = "Dislike"
)

// Valid 判断点赞状态是否合法
func (s LikeStatus) Valid() bool {
	switch s {
	case StatusNone, StatusLike, StatusDislike:
		return true
	}
	return false
}

// Like 点赞事实模型，每个 (用户, 目标) 最多一条记录
// 状态切换只改 Status，CreatedAt 保留首次点赞时间，用于"最新点赞"排序
type Like struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID     int64      `gorm:"not null;uniqueIndex:uq_user_parent_like;index:idx_likes_user_id;comment:点赞用户ID" json:"user_id"`
	ParentID   int64      `gorm:"not null;uniqueIndex:uq_user_parent_like;index:idx_likes_parent;comment:被点赞对象ID" json:"parent_id"`
	ParentType ParentType `gorm:"type:varchar(16);not null;uniqueIndex:uq_user_parent_like;index:idx_likes_parent;comment:被点赞对象类型" json:"parent_type"`
	Status     LikeStatus `gorm:"type:varchar(16);not null;default:'None';comment:点赞状态" json:"status"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index:idx_likes_created_at;comment:首次点赞时间" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime;comment:状态更新时间" json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
