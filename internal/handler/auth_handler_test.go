package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hitoshi/blogman/internal/model"
)

func newAuthHandler(t *testing.T, service *mockAuthService, metrics *spyMetrics) *AuthHandler {
	t.Helper()
	return NewAuthHandler(service, AuthHandlerConfig{SessionMaxAge: 3600}, newTestPage(t), metrics)
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	return nil
}

func TestRegister_Success_SetsSessionCookieAndRedirects(t *testing.T) {
	service := &mockAuthService{
		registerFn: func(ctx context.Context, email, password, name string) (*model.Session, error) {
			return &model.Session{ID: "session-abc", UserID: "user-1"}, nil
		},
	}
	metrics := &spyMetrics{}
	h := newAuthHandler(t, service, metrics)

	req := postForm("/register", url.Values{
		"name":     {"taro"},
		"email":    {"taro@example.com"},
		"password": {"secret"},
	})
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}

	cookie := sessionCookie(t, resp)
	if cookie == nil {
		t.Fatal("session cookie was not set")
	}
	if cookie.Value != "session-abc" {
		t.Errorf("cookie value = %q, want %q", cookie.Value, "session-abc")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
	if metrics.usersRegistered != 1 {
		t.Errorf("usersRegistered = %d, want 1", metrics.usersRegistered)
	}
}

func TestRegister_DuplicateEmail_FlashesAndRedirectsToLogin(t *testing.T) {
	service := &mockAuthService{
		registerFn: func(ctx context.Context, email, password, name string) (*model.Session, error) {
			return nil, model.NewDuplicateEmailError(email)
		},
	}
	h := newAuthHandler(t, service, &spyMetrics{})

	req := postForm("/register", url.Values{
		"name":     {"taro"},
		"email":    {"taro@example.com"},
		"password": {"secret"},
	})
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want %q", loc, "/login")
	}

	var flashSet bool
	for _, c := range resp.Cookies() {
		if c.Name == "flash" && c.Value != "" {
			flashSet = true
		}
	}
	if !flashSet {
		t.Error("flash cookie was not set")
	}
	if sessionCookie(t, resp) != nil {
		t.Error("session cookie should not be set on failure")
	}
}

func TestRegister_InvalidForm_RerendersWithFieldErrors(t *testing.T) {
	service := &mockAuthService{
		registerFn: func(ctx context.Context, email, password, name string) (*model.Session, error) {
			t.Fatal("register should not be called for invalid form")
			return nil, nil
		},
	}
	h := newAuthHandler(t, service, &spyMetrics{})

	req := postForm("/register", url.Values{
		"name":  {""},
		"email": {"not-an-email"},
	})
	w := httptest.NewRecorder()

	h.Register(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	// 入力値はフォームに保持される
	if !strings.Contains(w.Body.String(), "not-an-email") {
		t.Error("submitted email is not preserved in re-rendered form")
	}
}

func TestLogin_Success_SetsSessionCookieAndRedirects(t *testing.T) {
	service := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*model.Session, error) {
			return &model.Session{ID: "session-xyz", UserID: "user-1"}, nil
		},
	}
	h := newAuthHandler(t, service, &spyMetrics{})

	req := postForm("/login", url.Values{
		"email":    {"taro@example.com"},
		"password": {"secret"},
	})
	w := httptest.NewRecorder()

	h.Login(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
	if sessionCookie(t, resp) == nil {
		t.Error("session cookie was not set")
	}
}

func TestLogin_AuthFailures_FlashAndRedirectToLogin(t *testing.T) {
	// 未登録メールアドレスとパスワード不一致はどちらも同じ遷移
	cases := map[string]*model.AppError{
		"unknown email":  model.NewUnknownEmailError("unknown@example.com"),
		"wrong password": model.NewWrongPasswordError(),
	}

	for name, authErr := range cases {
		service := &mockAuthService{
			loginFn: func(ctx context.Context, email, password string) (*model.Session, error) {
				return nil, authErr
			},
		}
		metrics := &spyMetrics{}
		h := newAuthHandler(t, service, metrics)

		req := postForm("/login", url.Values{
			"email":    {"taro@example.com"},
			"password": {"secret"},
		})
		w := httptest.NewRecorder()

		h.Login(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", name, resp.StatusCode, http.StatusSeeOther)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Errorf("%s: Location = %q, want %q", name, loc, "/login")
		}
		if metrics.loginFailures != 1 {
			t.Errorf("%s: loginFailures = %d, want 1", name, metrics.loginFailures)
		}
	}
}

func TestLogout_DeletesSessionAndClearsCookie(t *testing.T) {
	var loggedOut string
	service := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := newAuthHandler(t, service, &spyMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "session-abc"})
	w := httptest.NewRecorder()

	h.Logout(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loggedOut != "session-abc" {
		t.Errorf("logged out session = %q, want %q", loggedOut, "session-abc")
	}

	cookie := sessionCookie(t, resp)
	if cookie == nil {
		t.Fatal("session cookie was not cleared")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("cookie MaxAge = %d, want negative (cleared)", cookie.MaxAge)
	}
}

func TestLogout_WithoutSession_StillRedirects(t *testing.T) {
	h := newAuthHandler(t, &mockAuthService{}, &spyMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()

	h.Logout(w, req)

	if w.Result().StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusSeeOther)
	}
}
