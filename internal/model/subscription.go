package model

import "time"

// Subscription 博客订阅关系模型
type Subscription struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系id" json:"id"`
	BlogID    int64     `gorm:"not null;uniqueIndex:uq_blog_subscriber;index:idx_subscriptions_blog_id;comment:被订阅博客id" json:"blog_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_blog_subscriber;index:idx_subscriptions_user_id;comment:订阅用户id" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
