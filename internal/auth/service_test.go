package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// --- モック定義 ---

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn      func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, session *model.Session) error
	findByIDFn      func(ctx context.Context, id string) (*model.Session, error)
	deleteByIDFn    func(ctx context.Context, id string) error
	deleteExpiredFn func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, before)
	}
	return 0, nil
}

func newTestService(userRepo *mockUserRepo, sessionRepo *mockSessionRepo) *Service {
	return NewService(userRepo, sessionRepo, ServiceConfig{SessionMaxAge: 3600})
}

// --- テスト ---

func TestRegister_CreatesUserAndSession(t *testing.T) {
	var createdUser *model.User
	var createdSession *model.Session

	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			createdUser = user
			return nil
		},
	}
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			createdSession = session
			return nil
		},
	}
	svc := newTestService(userRepo, sessionRepo)

	session, err := svc.Register(context.Background(), "taro@example.com", "secret", "taro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if createdUser == nil {
		t.Fatal("user was not created")
	}
	if createdUser.Email != "taro@example.com" {
		t.Errorf("email = %q, want %q", createdUser.Email, "taro@example.com")
	}
	if createdUser.Role != model.RoleMember {
		t.Errorf("role = %q, want %q", createdUser.Role, model.RoleMember)
	}
	// 平文パスワードを保存しない
	if createdUser.PasswordHash == "secret" {
		t.Error("password stored in plaintext")
	}
	if createdUser.PasswordHash == "" {
		t.Error("password hash is empty")
	}

	if createdSession == nil {
		t.Fatal("session was not created")
	}
	if session.UserID != createdUser.ID {
		t.Errorf("session.UserID = %q, want %q", session.UserID, createdUser.ID)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("session already expired")
	}
}

func TestRegister_DuplicateEmail_ReturnsAppError(t *testing.T) {
	userRepo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "existing", Email: email}, nil
		},
		createFn: func(ctx context.Context, user *model.User) error {
			t.Fatal("create should not be called")
			return nil
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	_, err := svc.Register(context.Background(), "taro@example.com", "secret", "taro")

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != model.ErrCodeDuplicateEmail {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodeDuplicateEmail)
	}
}

func TestRegister_RaceOnInsert_ReturnsDuplicateEmail(t *testing.T) {
	// 事前チェックとINSERTの間に同一メールアドレスの登録が割り込んだ場合、
	// 一意制約違反をDUPLICATE_EMAILエラーに変換する
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return repository.ErrDuplicate
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	_, err := svc.Register(context.Background(), "taro@example.com", "secret", "taro")

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != model.ErrCodeDuplicateEmail {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodeDuplicateEmail)
	}
}

func TestLogin_ValidCredentials_CreatesSession(t *testing.T) {
	hash, err := hashPassword("secret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	userRepo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	session, err := svc.Login(context.Background(), "taro@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("session.UserID = %q, want %q", session.UserID, "user-1")
	}
	if len(session.ID) != 64 {
		t.Errorf("session ID length = %d, want 64 (32 bytes hex)", len(session.ID))
	}
}

func TestLogin_UnknownEmail_ReturnsAppError(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	_, err := svc.Login(context.Background(), "unknown@example.com", "secret")

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != model.ErrCodeUnknownEmail {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodeUnknownEmail)
	}
}

func TestLogin_WrongPassword_ReturnsAppError(t *testing.T) {
	hash, err := hashPassword("correct-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	userRepo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestService(userRepo, &mockSessionRepo{})

	_, err = svc.Login(context.Background(), "taro@example.com", "wrong-password")

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != model.ErrCodeWrongPassword {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodeWrongPassword)
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	var deletedID string
	sessionRepo := &mockSessionRepo{
		deleteByIDFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := newTestService(&mockUserRepo{}, sessionRepo)

	if err := svc.Logout(context.Background(), "session-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "session-1" {
		t.Errorf("deleted session = %q, want %q", deletedID, "session-1")
	}
}

func TestLogout_EmptySessionID_IsNoop(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		deleteByIDFn: func(ctx context.Context, id string) error {
			t.Fatal("delete should not be called")
			return nil
		},
	}
	svc := newTestService(&mockUserRepo{}, sessionRepo)

	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCurrentUser_ValidSession_ReturnsUser(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return &model.Session{ID: id, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Name: "taro"}, nil
		},
	}
	svc := newTestService(userRepo, sessionRepo)

	user, err := svc.CurrentUser(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.ID != "user-1" {
		t.Errorf("user = %+v, want user-1", user)
	}
}

func TestCurrentUser_AnonymousCases_ReturnNil(t *testing.T) {
	// セッションIDが空、またはセッションが見つからない（期限切れ含む）場合は
	// エラーなしでnilを返す
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	for _, sessionID := range []string{"", "expired-or-missing"} {
		user, err := svc.CurrentUser(context.Background(), sessionID)
		if err != nil {
			t.Errorf("sessionID %q: unexpected error: %v", sessionID, err)
		}
		if user != nil {
			t.Errorf("sessionID %q: user = %+v, want nil", sessionID, user)
		}
	}
}
