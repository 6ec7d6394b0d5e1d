package service

import (
	"errors"
	"sync"

	"plume-go/internal/api/dto"
	"plume-go/internal/model"
	"plume-go/internal/repository"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrInvalidLikeStatus = errors.New("无效的点赞状态")

const (
	// UnknownLogin 点赞用户已注销时投影中使用的替代登录名
	UnknownLogin = "Unknown"
	// NewestLikesLimit 投影中缓存的最新点赞条数上限
	NewestLikesLimit = 3
)

// LikeStore 点赞事实存储，由 repository.LikeRepository 实现
type LikeStore interface {
	GetByUserAndParent(userID, parentID int64, parentType model.ParentType) (*model.Like, error)
	ListNewestLikes(parentID int64, parentType model.ParentType, limit int) ([]model.Like, error)
	CountByStatus(parentID int64, parentType model.ParentType, status model.LikeStatus) (int64, error)
	UpsertStatus(userID, parentID int64, parentType model.ParentType, status model.LikeStatus) (bool, error)
}

// UserDirectory 用户目录，用于把点赞用户 ID 解析为登录名
type UserDirectory interface {
	GetByID(id int64) (*model.User, error)
}

// PostProjectionStore 帖子投影的读写，由 repository.PostRepository 实现
type PostProjectionStore interface {
	GetByID(id int64) (*model.Post, error)
	UpdateLikesProjection(id int64, likesCount, dislikesCount int64, newestLikes []model.NewestLike) error
}

// CommentDirectory 评论存在性检查，由 repository.CommentRepository 实现
type CommentDirectory interface {
	GetByID(id int64) (*model.Comment, error)
}

// LikeApplier 点赞状态落地策略
// 帖子走写时物化投影，评论走读时实时聚合，策略差异显式成接口而不藏在调用点
type LikeApplier interface {
	Apply(userID, parentID int64, status model.LikeStatus) error
}

// LikeAggregator 点赞聚合器：从事实表计算计数和最新点赞用户
// 无自有状态，帖子写后和评论读时共用
type LikeAggregator struct {
	likeStore LikeStore
	users     UserDirectory
}

func NewLikeAggregator(likeStore LikeStore, users UserDirectory) *LikeAggregator {
	return &LikeAggregator{likeStore: likeStore, users: users}
}

// Counts 统计某目标的点赞/点踩数，None 状态两边都不计
func (a *LikeAggregator) Counts(parentID int64, parentType model.ParentType) (int64, int64, error) {
	likes, err := a.likeStore.CountByStatus(parentID, parentType, model.StatusLike)
	if err != nil {
		return 0, 0, err
	}
	dislikes, err := a.likeStore.CountByStatus(parentID, parentType, model.StatusDislike)
	if err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

// NewestLikers 取最新 limit 条 Like 状态记录并解析用户登录名
// 登录名并发解析，按首次点赞时间倒序原样回填
// 用户已注销时用 UnknownLogin 兜底，单个用户缺失不能让整次聚合失败
func (a *LikeAggregator) NewestLikers(parentID int64, parentType model.ParentType, limit int) ([]model.NewestLike, error) {
	likes, err := a.likeStore.ListNewestLikes(parentID, parentType, limit)
	if err != nil {
		return nil, err
	}

	result := make([]model.NewestLike, len(likes))
	g := new(errgroup.Group)
	for i := range likes {
		i, like := i, likes[i]
		g.Go(func() error {
			login := UnknownLogin
			user, err := a.users.GetByID(like.UserID)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			} else {
				login = user.Login
			}
			result[i] = model.NewestLike{
				AddedAt: like.CreatedAt,
				UserID:  like.UserID,
				Login:   login,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// MaterializedProjection 帖子点赞策略：每次状态变更后全量重算投影并整体覆盖
type MaterializedProjection struct {
	likeStore  LikeStore
	posts      PostProjectionStore
	aggregator *LikeAggregator

	// 每个帖子一把锁，upsert→重算→落盘 串行执行，
	// 避免并发重算互相覆盖
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewMaterializedProjection(likeStore LikeStore, posts PostProjectionStore, aggregator *LikeAggregator) *MaterializedProjection {
	return &MaterializedProjection{
		likeStore:  likeStore,
		posts:      posts,
		aggregator: aggregator,
		locks:      make(map[int64]*sync.Mutex),
	}
}

func (p *MaterializedProjection) lockFor(postID int64) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[postID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[postID] = lock
	}
	return lock
}

// Apply 写入帖子点赞状态并维护投影
// 状态未变化时直接返回，不触发重算
func (p *MaterializedProjection) Apply(userID, postID int64, status model.LikeStatus) error {
	if _, err := p.posts.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	lock := p.lockFor(postID)
	lock.Lock()
	defer lock.Unlock()

	changed, err := p.likeStore.UpsertStatus(userID, postID, model.ParentPost, status)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return p.recompute(postID)
}

// recompute 从事实表全量重算投影并覆盖写入帖子
func (p *MaterializedProjection) recompute(postID int64) error {
	likes, dislikes, err := p.aggregator.Counts(postID, model.ParentPost)
	if err != nil {
		return err
	}

	newest, err := p.aggregator.NewestLikers(postID, model.ParentPost, NewestLikesLimit)
	if err != nil {
		return err
	}

	return p.posts.UpdateLikesProjection(postID, likes, dislikes, newest)
}

// LiveAggregate 评论点赞策略：写入只落事实表，计数在每次读取时实时聚合
type LiveAggregate struct {
	likeStore  LikeStore
	comments   CommentDirectory
	aggregator *LikeAggregator
}

func NewLiveAggregate(likeStore LikeStore, comments CommentDirectory, aggregator *LikeAggregator) *LiveAggregate {
	return &LiveAggregate{likeStore: likeStore, comments: comments, aggregator: aggregator}
}

// Apply 写入评论点赞状态，评论无投影，无需重算
func (a *LiveAggregate) Apply(userID, commentID int64, status model.LikeStatus) error {
	if _, err := a.comments.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	_, err := a.likeStore.UpsertStatus(userID, commentID, model.ParentComment, status)
	return err
}

// View 实时聚合评论的点赞视图
// viewerID 为 nil（匿名）或无记录时 MyStatus 为 None
func (a *LiveAggregate) View(commentID int64, viewerID *int64) (*dto.LikesInfo, error) {
	likes, dislikes, err := a.aggregator.Counts(commentID, model.ParentComment)
	if err != nil {
		return nil, err
	}

	myStatus := model.StatusNone
	if viewerID != nil {
		fact, err := a.likeStore.GetByUserAndParent(*viewerID, commentID, model.ParentComment)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		} else {
			myStatus = fact.Status
		}
	}

	return &dto.LikesInfo{
		LikesCount:    likes,
		DislikesCount: dislikes,
		MyStatus:      string(myStatus),
	}, nil
}

// LikeService 点赞服务，对外统一入口，内部按目标类型分派策略
type LikeService struct {
	likeStore    LikeStore
	postLikes    *MaterializedProjection
	commentLikes *LiveAggregate
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	userRepo *repository.UserRepository,
) *LikeService {
	aggregator := NewLikeAggregator(likeRepo, userRepo)
	return &LikeService{
		likeStore:    likeRepo,
		postLikes:    NewMaterializedProjection(likeRepo, postRepo, aggregator),
		commentLikes: NewLiveAggregate(likeRepo, commentRepo, aggregator),
	}
}

// SetPostLikeStatus 设置用户对帖子的点赞状态
func (s *LikeService) SetPostLikeStatus(userID, postID int64, status model.LikeStatus) error {
	if !status.Valid() {
		return ErrInvalidLikeStatus
	}
	return s.postLikes.Apply(userID, postID, status)
}

// SetCommentLikeStatus 设置用户对评论的点赞状态
func (s *LikeService) SetCommentLikeStatus(userID, commentID int64, status model.LikeStatus) error {
	if !status.Valid() {
		return ErrInvalidLikeStatus
	}
	return s.commentLikes.Apply(userID, commentID, status)
}

// CommentLikesInfo 获取评论的实时点赞视图
func (s *LikeService) CommentLikesInfo(commentID int64, viewerID *int64) (*dto.LikesInfo, error) {
	return s.commentLikes.View(commentID, viewerID)
}

// MyPostStatus 查询当前用户对帖子的点赞状态，匿名或无记录返回 None
func (s *LikeService) MyPostStatus(postID int64, viewerID *int64) (model.LikeStatus, error) {
	if viewerID == nil {
		return model.StatusNone, nil
	}
	fact, err := s.likeStore.GetByUserAndParent(*viewerID, postID, model.ParentPost)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.StatusNone, nil
		}
		return model.StatusNone, err
	}
	return fact.Status, nil
}
