package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"plume-go/internal/api/dto"
	"plume-go/internal/config"
	infraES "plume-go/internal/infra/elasticsearch"
	"plume-go/internal/repository"
	"plume-go/pkg/logger"

	"go.uber.org/zap"
)

type SearchService struct {
	postRepo *repository.PostRepository
}

func NewSearchService(postRepo *repository.PostRepository) *SearchService {
	return &SearchService{postRepo: postRepo}
}

// SearchPosts 搜索帖子（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchPosts(req *dto.SearchPostRequest) (*dto.SearchPostData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	data, err := s.searchFromES(req)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(req)
	}
	return data, nil
}

func (s *SearchService) searchFromES(req *dto.SearchPostRequest) (*dto.SearchPostData, error) {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["posts"]
	if indexName == "" {
		indexName = "posts"
	}

	query := s.buildESQuery(req)
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, indexName, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64           `json:"_score"`
				Source infraES.ESPostDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	items := make([]dto.SearchPostItem, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		doc := h.Source
		items = append(items, dto.SearchPostItem{
			ID:               doc.ID,
			BlogID:           doc.BlogID,
			BlogName:         doc.BlogName,
			Title:            doc.Title,
			ShortDescription: doc.ShortDescription,
			LikesCount:       doc.LikesCount,
			DislikesCount:    doc.DislikesCount,
			Score:            h.Score,
			CreatedAt:        doc.CreatedAt,
		})
	}

	total := esResp.Hits.Total.Value
	totalPages := (total + int64(req.PageSize) - 1) / int64(req.PageSize)

	return &dto.SearchPostData{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
		Source:     "es",
	}, nil
}

func (s *SearchService) buildESQuery(req *dto.SearchPostRequest) map[string]interface{} {
	boolQ := map[string]interface{}{
		"filter": []interface{}{},
		"must":   []interface{}{},
	}

	if q := strings.TrimSpace(req.Keyword); q != "" {
		boolQ["must"] = append(boolQ["must"].([]interface{}),
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    q,
					"fields":   []string{"title^3", "short_description^2", "content^1"},
					"type":     "best_fields",
					"operator": "or",
				},
			},
		)
	}

	if req.BlogID != nil {
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"term": map[string]interface{}{"blog_id": *req.BlogID}})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQ,
		},
		"from": (req.Page - 1) * req.PageSize,
		"size": req.PageSize,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}
}

// searchFromDB ES 不可用时的兜底：标题/摘要 ILIKE 模糊匹配
func (s *SearchService) searchFromDB(req *dto.SearchPostRequest) (*dto.SearchPostData, error) {
	skip := (req.Page - 1) * req.PageSize
	keyword := strings.TrimSpace(req.Keyword)

	posts, total, err := s.postRepo.List(skip, req.PageSize, req.BlogID, &keyword)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SearchPostItem, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		items = append(items, dto.SearchPostItem{
			ID:               p.ID,
			BlogID:           p.BlogID,
			BlogName:         p.BlogName,
			Title:            p.Title,
			ShortDescription: p.ShortDescription,
			LikesCount:       p.LikesCount,
			DislikesCount:    p.DislikesCount,
			CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		})
	}

	totalPages := (total + int64(req.PageSize) - 1) / int64(req.PageSize)

	return &dto.SearchPostData{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
		Source:     "db",
	}, nil
}

// SyncPostToES 把单个帖子同步进搜索索引
func (s *SearchService) SyncPostToES(postID int64) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return infraES.SyncPost(ctx, post)
}
