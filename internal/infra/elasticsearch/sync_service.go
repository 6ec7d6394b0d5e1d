package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"plume-go/internal/config"
	"plume-go/internal/model"
	"plume-go/pkg/logger"

	"go.uber.org/zap"
)

// ESPostDoc ES 帖子文档结构
type ESPostDoc struct {
	ID               int64  `json:"id"`
	BlogID           int64  `json:"blog_id"`
	BlogName         string `json:"blog_name"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	Content          string `json:"content"`
	LikesCount       int64  `json:"likes_count"`
	DislikesCount    int64  `json:"dislikes_count"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func postToESDoc(p *model.Post) *ESPostDoc {
	return &ESPostDoc{
		ID:               p.ID,
		BlogID:           p.BlogID,
		BlogName:         p.BlogName,
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Content:          p.Content,
		LikesCount:       p.LikesCount,
		DislikesCount:    p.DislikesCount,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}

func postsIndexName() string {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["posts"]
	if indexName == "" {
		indexName = "posts"
	}
	return indexName
}

// SyncPost 同步单个帖子到 ES
func SyncPost(ctx context.Context, p *model.Post) error {
	doc := postToESDoc(p)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, postsIndexName(), fmt.Sprintf("%d", p.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Post synced to ES", zap.Int64("post_id", p.ID))
	return nil
}

// DeletePost 从 ES 删除帖子
func DeletePost(ctx context.Context, postID int64) error {
	resp, err := Delete(ctx, postsIndexName(), fmt.Sprintf("%d", postID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}
