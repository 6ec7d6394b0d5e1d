package service

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"plume-go/internal/model"

	"gorm.io/gorm"
)

// ---- 内存假实现 ----

type likeKey struct {
	userID     int64
	parentID   int64
	parentType model.ParentType
}

type fakeLikeStore struct {
	mu    sync.Mutex
	facts map[likeKey]*model.Like
	now   time.Time
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{
		facts: make(map[likeKey]*model.Like),
		now:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick 推进假时钟，保证每条记录的 CreatedAt 单调递增
func (s *fakeLikeStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *fakeLikeStore) GetByUserAndParent(userID, parentID int64, parentType model.ParentType) (*model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fact, ok := s.facts[likeKey{userID, parentID, parentType}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *fact
	return &cp, nil
}

func (s *fakeLikeStore) ListNewestLikes(parentID int64, parentType model.ParentType, limit int) ([]model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var likes []model.Like
	for _, fact := range s.facts {
		if fact.ParentID == parentID && fact.ParentType == parentType && fact.Status == model.StatusLike {
			likes = append(likes, *fact)
		}
	}
	sort.Slice(likes, func(i, j int) bool {
		return likes[i].CreatedAt.After(likes[j].CreatedAt)
	})
	if len(likes) > limit {
		likes = likes[:limit]
	}
	return likes, nil
}

func (s *fakeLikeStore) CountByStatus(parentID int64, parentType model.ParentType, status model.LikeStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, fact := range s.facts {
		if fact.ParentID == parentID && fact.ParentType == parentType && fact.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakeLikeStore) UpsertStatus(userID, parentID int64, parentType model.ParentType, status model.LikeStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID, parentID, parentType}
	fact, ok := s.facts[key]
	if !ok {
		s.facts[key] = &model.Like{
			UserID:     userID,
			ParentID:   parentID,
			ParentType: parentType,
			Status:     status,
			CreatedAt:  s.tick(),
		}
		return true, nil
	}
	if fact.Status == status {
		return false, nil
	}
	fact.Status = status
	return true, nil
}

type fakeUserDirectory struct {
	users map[int64]*model.User
}

func (d *fakeUserDirectory) GetByID(id int64) (*model.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakePostStore struct {
	mu          sync.Mutex
	posts       map[int64]*model.Post
	updateCalls int
}

func (s *fakePostStore) GetByID(id int64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (s *fakePostStore) UpdateLikesProjection(id int64, likesCount, dislikesCount int64, newestLikes []model.NewestLike) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	post.LikesCount = likesCount
	post.DislikesCount = dislikesCount
	post.NewestLikes = newestLikes
	s.updateCalls++
	return nil
}

type fakeCommentStore struct {
	comments map[int64]*model.Comment
}

func (s *fakeCommentStore) GetByID(id int64) (*model.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

// ---- 测试夹具 ----

type likeFixture struct {
	likes    *fakeLikeStore
	users    *fakeUserDirectory
	posts    *fakePostStore
	comments *fakeCommentStore

	postLikes    *MaterializedProjection
	commentLikes *LiveAggregate
}

func newLikeFixture() *likeFixture {
	likes := newFakeLikeStore()
	users := &fakeUserDirectory{users: map[int64]*model.User{
		1: {ID: 1, Login: "alice"},
		2: {ID: 2, Login: "bob"},
		3: {ID: 3, Login: "carol"},
		4: {ID: 4, Login: "dave"},
		5: {ID: 5, Login: "erin"},
	}}
	posts := &fakePostStore{posts: map[int64]*model.Post{
		100: {ID: 100, Title: "hello"},
	}}
	comments := &fakeCommentStore{comments: map[int64]*model.Comment{
		200: {ID: 200, PostID: 100, Content: "nice"},
	}}

	aggregator := NewLikeAggregator(likes, users)
	return &likeFixture{
		likes:        likes,
		users:        users,
		posts:        posts,
		comments:     comments,
		postLikes:    NewMaterializedProjection(likes, posts, aggregator),
		commentLikes: NewLiveAggregate(likes, comments, aggregator),
	}
}

// ---- 帖子投影 ----

func TestPostLikeProjectionRecompute(t *testing.T) {
	f := newLikeFixture()

	if err := f.postLikes.Apply(1, 100, model.StatusLike); err != nil {
		t.Fatalf("apply like: %v", err)
	}
	if err := f.postLikes.Apply(2, 100, model.StatusDislike); err != nil {
		t.Fatalf("apply dislike: %v", err)
	}

	post := f.posts.posts[100]
	if post.LikesCount != 1 || post.DislikesCount != 1 {
		t.Fatalf("counts = (%d, %d), want (1, 1)", post.LikesCount, post.DislikesCount)
	}
	if len(post.NewestLikes) != 1 || post.NewestLikes[0].Login != "alice" {
		t.Fatalf("newest likes = %+v, want one entry by alice", post.NewestLikes)
	}
}

func TestPostLikeSameStatusSkipsRecompute(t *testing.T) {
	f := newLikeFixture()

	if err := f.postLikes.Apply(1, 100, model.StatusLike); err != nil {
		t.Fatalf("apply like: %v", err)
	}
	callsAfterFirst := f.posts.updateCalls

	// 再发一次同样的状态，状态没变，不允许重算投影
	if err := f.postLikes.Apply(1, 100, model.StatusLike); err != nil {
		t.Fatalf("repeat like: %v", err)
	}
	if f.posts.updateCalls != callsAfterFirst {
		t.Fatalf("update calls = %d, want %d (idempotent apply must not recompute)", f.posts.updateCalls, callsAfterFirst)
	}
}

func TestPostLikeStatusTransition(t *testing.T) {
	f := newLikeFixture()

	if err := f.postLikes.Apply(1, 100, model.StatusLike); err != nil {
		t.Fatalf("apply like: %v", err)
	}
	firstLikedAt := f.likes.facts[likeKey{1, 100, model.ParentPost}].CreatedAt

	if err := f.postLikes.Apply(1, 100, model.StatusDislike); err != nil {
		t.Fatalf("apply dislike: %v", err)
	}

	post := f.posts.posts[100]
	if post.LikesCount != 0 || post.DislikesCount != 1 {
		t.Fatalf("counts = (%d, %d), want (0, 1)", post.LikesCount, post.DislikesCount)
	}
	if len(post.NewestLikes) != 0 {
		t.Fatalf("newest likes = %+v, want empty after transition to dislike", post.NewestLikes)
	}

	// 状态切换只改 Status，首次点赞时间不能被覆盖
	fact := f.likes.facts[likeKey{1, 100, model.ParentPost}]
	if !fact.CreatedAt.Equal(firstLikedAt) {
		t.Fatalf("created at changed on transition: %v -> %v", firstLikedAt, fact.CreatedAt)
	}

	// None 不删行，只是两边都不计数
	if err := f.postLikes.Apply(1, 100, model.StatusNone); err != nil {
		t.Fatalf("apply none: %v", err)
	}
	if _, ok := f.likes.facts[likeKey{1, 100, model.ParentPost}]; !ok {
		t.Fatal("fact row must survive a None transition")
	}
	if post.LikesCount != 0 || post.DislikesCount != 0 {
		t.Fatalf("counts = (%d, %d), want (0, 0) after None", post.LikesCount, post.DislikesCount)
	}
}

func TestPostNewestLikesCapAndOrder(t *testing.T) {
	f := newLikeFixture()

	// 依次点赞：1, 2, 3, 4, 5（假时钟单调递增）
	for _, userID := range []int64{1, 2, 3, 4, 5} {
		if err := f.postLikes.Apply(userID, 100, model.StatusLike); err != nil {
			t.Fatalf("apply like by user %d: %v", userID, err)
		}
	}

	post := f.posts.posts[100]
	if post.LikesCount != 5 {
		t.Fatalf("likes count = %d, want 5", post.LikesCount)
	}
	if len(post.NewestLikes) != NewestLikesLimit {
		t.Fatalf("newest likes len = %d, want %d", len(post.NewestLikes), NewestLikesLimit)
	}

	wantLogins := []string{"erin", "dave", "carol"}
	for i, want := range wantLogins {
		if post.NewestLikes[i].Login != want {
			t.Errorf("newest likes[%d] = %q, want %q", i, post.NewestLikes[i].Login, want)
		}
	}
}

func TestPostNewestLikesUnknownUser(t *testing.T) {
	f := newLikeFixture()

	if err := f.postLikes.Apply(1, 100, model.StatusLike); err != nil {
		t.Fatalf("apply like: %v", err)
	}

	// 用户注销后重算，投影里的登录名兜底为 Unknown
	delete(f.users.users, 1)
	if err := f.postLikes.Apply(2, 100, model.StatusLike); err != nil {
		t.Fatalf("apply like by second user: %v", err)
	}

	post := f.posts.posts[100]
	if len(post.NewestLikes) != 2 {
		t.Fatalf("newest likes len = %d, want 2", len(post.NewestLikes))
	}
	if post.NewestLikes[0].Login != "bob" {
		t.Errorf("newest likes[0] = %q, want bob", post.NewestLikes[0].Login)
	}
	if post.NewestLikes[1].Login != UnknownLogin {
		t.Errorf("newest likes[1] = %q, want %q", post.NewestLikes[1].Login, UnknownLogin)
	}
	if post.NewestLikes[1].UserID != 1 {
		t.Errorf("newest likes[1].UserID = %d, want 1", post.NewestLikes[1].UserID)
	}
}

func TestPostLikeNotFound(t *testing.T) {
	f := newLikeFixture()

	err := f.postLikes.Apply(1, 999, model.StatusLike)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}

func TestPostLikeConcurrentApply(t *testing.T) {
	f := newLikeFixture()

	var wg sync.WaitGroup
	for userID := int64(1); userID <= 5; userID++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := f.postLikes.Apply(id, 100, model.StatusLike); err != nil {
				t.Errorf("apply like by user %d: %v", id, err)
			}
		}(userID)
	}
	wg.Wait()

	post := f.posts.posts[100]
	if post.LikesCount != 5 {
		t.Fatalf("likes count = %d, want 5 after concurrent applies", post.LikesCount)
	}
	if len(post.NewestLikes) != NewestLikesLimit {
		t.Fatalf("newest likes len = %d, want %d", len(post.NewestLikes), NewestLikesLimit)
	}
}

// ---- 评论实时聚合 ----

func TestCommentLikesLiveView(t *testing.T) {
	f := newLikeFixture()

	if err := f.commentLikes.Apply(1, 200, model.StatusLike); err != nil {
		t.Fatalf("apply like: %v", err)
	}
	if err := f.commentLikes.Apply(2, 200, model.StatusLike); err != nil {
		t.Fatalf("apply like: %v", err)
	}
	if err := f.commentLikes.Apply(3, 200, model.StatusDislike); err != nil {
		t.Fatalf("apply dislike: %v", err)
	}

	viewerID := int64(3)
	info, err := f.commentLikes.View(200, &viewerID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if info.LikesCount != 2 || info.DislikesCount != 1 {
		t.Fatalf("counts = (%d, %d), want (2, 1)", info.LikesCount, info.DislikesCount)
	}
	if info.MyStatus != string(model.StatusDislike) {
		t.Fatalf("my status = %q, want Dislike", info.MyStatus)
	}
}

func TestCommentLikesAnonymousView(t *testing.T) {
	f := newLikeFixture()

	if err := f.commentLikes.Apply(1, 200, model.StatusLike); err != nil {
		t.Fatalf("apply like: %v", err)
	}

	// 匿名访问：MyStatus 恒为 None
	info, err := f.commentLikes.View(200, nil)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if info.MyStatus != string(model.StatusNone) {
		t.Fatalf("my status = %q, want None for anonymous viewer", info.MyStatus)
	}

	// 有身份但没点过赞：同样是 None
	viewerID := int64(2)
	info, err = f.commentLikes.View(200, &viewerID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if info.MyStatus != string(model.StatusNone) {
		t.Fatalf("my status = %q, want None for viewer without a fact", info.MyStatus)
	}
}

func TestCommentLikeNotFound(t *testing.T) {
	f := newLikeFixture()

	err := f.commentLikes.Apply(1, 999, model.StatusLike)
	if !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("err = %v, want ErrCommentNotFound", err)
	}
}
