package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newFormRequest(path, token string) *http.Request {
	body := url.Values{}
	if token != "" {
		body.Set("csrf_token", token)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCSRFMiddleware_SafeMethod_SkipsValidation(t *testing.T) {
	mw := NewCSRFMiddleware(CSRFConfig{})

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if !called {
		t.Error("handler should be called for safe methods")
	}
}

func TestCSRFMiddleware_MatchingTokens_PassesThrough(t *testing.T) {
	mw := NewCSRFMiddleware(CSRFConfig{})

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := newFormRequest("/post/p1", "token-abc")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-abc"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if !called {
		t.Error("handler should be called when tokens match")
	}
}

func TestCSRFMiddleware_MissingCookie_Returns403(t *testing.T) {
	mw := NewCSRFMiddleware(CSRFConfig{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := newFormRequest("/post/p1", "token-abc")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestCSRFMiddleware_MissingFormToken_Returns403(t *testing.T) {
	mw := NewCSRFMiddleware(CSRFConfig{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := newFormRequest("/post/p1", "")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-abc"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestCSRFMiddleware_TokenMismatch_Returns403(t *testing.T) {
	mw := NewCSRFMiddleware(CSRFConfig{})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := newFormRequest("/post/p1", "wrong-token")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "token-abc"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestEnsureCSRFToken_NoCookie_GeneratesAndSets(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()

	token := EnsureCSRFToken(w, req, CSRFConfig{})

	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 (32 bytes hex)", len(token))
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "csrf_token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("csrf_token cookie was not set")
	}
	if cookie.Value != token {
		t.Errorf("cookie value = %q, want %q", cookie.Value, token)
	}
	if !cookie.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
}

func TestEnsureCSRFToken_ExistingCookie_ReturnsSameToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: "existing-token"})
	w := httptest.NewRecorder()

	token := EnsureCSRFToken(w, req, CSRFConfig{})

	if token != "existing-token" {
		t.Errorf("token = %q, want %q", token, "existing-token")
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("cookie should not be reset when one already exists")
	}
}
