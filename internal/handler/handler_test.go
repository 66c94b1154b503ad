package handler

import (
	"context"
	"testing"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/post"
	"github.com/hitoshi/blogman/internal/view"
)

// --- 共有モック定義 ---

type mockAuthService struct {
	registerFn func(ctx context.Context, email, password, name string) (*model.Session, error)
	loginFn    func(ctx context.Context, email, password string) (*model.Session, error)
	logoutFn   func(ctx context.Context, sessionID string) error
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*model.Session, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, email, password, name)
	}
	return &model.Session{ID: "new-session"}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return &model.Session{ID: "new-session"}, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

type mockPostService struct {
	createFn func(ctx context.Context, author *model.User, in post.Input) (*model.BlogPost, error)
	getFn    func(ctx context.Context, postID string) (*model.BlogPost, error)
	listFn   func(ctx context.Context) ([]model.BlogPost, error)
	updateFn func(ctx context.Context, editor *model.User, postID string, in post.Input) (*model.BlogPost, error)
	deleteFn func(ctx context.Context, editor *model.User, postID string) error
}

func (m *mockPostService) Create(ctx context.Context, author *model.User, in post.Input) (*model.BlogPost, error) {
	if m.createFn != nil {
		return m.createFn(ctx, author, in)
	}
	return &model.BlogPost{ID: "new-post", Title: in.Title}, nil
}

func (m *mockPostService) Get(ctx context.Context, postID string) (*model.BlogPost, error) {
	if m.getFn != nil {
		return m.getFn(ctx, postID)
	}
	return nil, model.NewPostNotFoundError(postID)
}

func (m *mockPostService) List(ctx context.Context) ([]model.BlogPost, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPostService) Update(ctx context.Context, editor *model.User, postID string, in post.Input) (*model.BlogPost, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, editor, postID, in)
	}
	return &model.BlogPost{ID: postID, Title: in.Title}, nil
}

func (m *mockPostService) Delete(ctx context.Context, editor *model.User, postID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, editor, postID)
	}
	return nil
}

type mockCommentService struct {
	addFn        func(ctx context.Context, author *model.User, postID, body string) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID string) ([]model.CommentWithAuthor, error)
}

func (m *mockCommentService) Add(ctx context.Context, author *model.User, postID, body string) (*model.Comment, error) {
	if m.addFn != nil {
		return m.addFn(ctx, author, postID, body)
	}
	return &model.Comment{ID: "new-comment", PostID: postID, Body: body}, nil
}

func (m *mockCommentService) ListByPost(ctx context.Context, postID string) ([]model.CommentWithAuthor, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, nil
}

// spyMetrics は呼び出し回数を記録するメトリクスのスパイ。
type spyMetrics struct {
	usersRegistered int
	loginFailures   int
	postsCreated    int
	commentsCreated int
}

func (s *spyMetrics) RecordUserRegistered() { s.usersRegistered++ }
func (s *spyMetrics) RecordLoginFailure()   { s.loginFailures++ }
func (s *spyMetrics) RecordPostCreated()    { s.postsCreated++ }
func (s *spyMetrics) RecordCommentCreated() { s.commentsCreated++ }

// --- テストヘルパー ---

func newTestPage(t *testing.T) *page {
	t.Helper()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return newPage(renderer, view.NewFlash("test-secret", false), middleware.CSRFConfig{})
}

func testAdmin() *model.User {
	return &model.User{ID: "admin-1", Name: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
}

func testMember() *model.User {
	return &model.User{ID: "member-1", Name: "taro", Email: "taro@example.com", Role: model.RoleMember}
}
