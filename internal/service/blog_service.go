package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"plume-go/internal/api/dto"
	"plume-go/internal/config"
	infraMinio "plume-go/internal/infra/minio"
	"plume-go/internal/model"
	"plume-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBlogNotFound     = errors.New("博客不存在")
	ErrBlogNoPermission = errors.New("没有权限操作该博客")
)

type BlogService struct {
	blogRepo *repository.BlogRepository
	postRepo *repository.PostRepository
}

func NewBlogService(blogRepo *repository.BlogRepository, postRepo *repository.PostRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, postRepo: postRepo}
}

// Create 创建博客
func (s *BlogService) Create(ownerID int64, req *dto.BlogCreateRequest) (*dto.BlogInfo, error) {
	blog := &model.Blog{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
	}

	if err := s.blogRepo.Create(blog); err != nil {
		return nil, err
	}

	return toBlogInfo(blog), nil
}

// GetByID 获取博客详情
func (s *BlogService) GetByID(id int64) (*dto.BlogInfo, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return toBlogInfo(blog), nil
}

// Update 更新博客（仅博主本人）
// 改名时同步帖子上的博客名冗余字段
func (s *BlogService) Update(blogID, userID int64, req *dto.BlogUpdateRequest) (*dto.BlogInfo, error) {
	blog, err := s.blogRepo.GetByID(blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	if blog.OwnerID != userID {
		return nil, ErrBlogNoPermission
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.WebsiteURL != nil {
		updates["website_url"] = *req.WebsiteURL
	}

	if len(updates) == 0 {
		return toBlogInfo(blog), nil
	}

	updated, err := s.blogRepo.Update(blogID, updates)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != blog.Name {
		if err := s.postRepo.UpdateBlogName(blogID, *req.Name); err != nil {
			return nil, err
		}
	}

	return toBlogInfo(updated), nil
}

// Delete 删除博客（仅博主本人）
func (s *BlogService) Delete(blogID, userID int64) error {
	blog, err := s.blogRepo.GetByID(blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	if blog.OwnerID != userID {
		return ErrBlogNoPermission
	}

	_, err = s.blogRepo.Delete(blogID)
	return err
}

// List 博客分页列表（支持名称搜索）
func (s *BlogService) List(page, pageSize int, search *string) (*dto.BlogListData, error) {
	skip := (page - 1) * pageSize
	blogs, total, err := s.blogRepo.List(skip, pageSize, search)
	if err != nil {
		return nil, err
	}
	return buildBlogListData(blogs, total, page, pageSize), nil
}

// ListByOwner 获取博主名下的博客列表
func (s *BlogService) ListByOwner(ownerID int64, page, pageSize int) (*dto.BlogListData, error) {
	skip := (page - 1) * pageSize
	blogs, total, err := s.blogRepo.ListByOwner(ownerID, skip, pageSize)
	if err != nil {
		return nil, err
	}
	return buildBlogListData(blogs, total, page, pageSize), nil
}

// UploadWallpaper 上传博客壁纸（仅博主本人），对象存 MinIO，URL 落库
func (s *BlogService) UploadWallpaper(ctx context.Context, blogID, userID int64, filename string, reader io.Reader, size int64, contentType string) (*dto.BlogInfo, error) {
	blog, err := s.blogRepo.GetByID(blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	if blog.OwnerID != userID {
		return nil, ErrBlogNoPermission
	}

	bucket := config.GetMinIO().ImageBucket
	objectName := fmt.Sprintf("blogs/%d/wallpaper/%s%s", blogID, uuid.NewString(), path.Ext(filename))

	url, err := infraMinio.UploadObject(ctx, bucket, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	updated, err := s.blogRepo.Update(blogID, map[string]interface{}{"wallpaper_url": url})
	if err != nil {
		return nil, err
	}
	return toBlogInfo(updated), nil
}

func toBlogInfo(b *model.Blog) *dto.BlogInfo {
	return &dto.BlogInfo{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		Name:            b.Name,
		Description:     b.Description,
		WebsiteURL:      b.WebsiteURL,
		WallpaperURL:    b.WallpaperURL,
		SubscriberCount: b.SubscriberCount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func buildBlogListData(blogs []model.Blog, total int64, page, pageSize int) *dto.BlogListData {
	items := make([]dto.BlogInfo, 0, len(blogs))
	for i := range blogs {
		items = append(items, *toBlogInfo(&blogs[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.BlogListData{
		Blogs:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
