package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/form"
	"github.com/hitoshi/blogman/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, email, password, name string) (*model.Session, error)
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthMetrics は認証ハンドラーが記録するメトリクスのインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type AuthMetrics interface {
	RecordUserRegistered()
	RecordLoginFailure()
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler はユーザー登録・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	*page
	service AuthServiceInterface
	config  AuthHandlerConfig
	metrics AuthMetrics
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, p *page, metrics AuthMetrics) *AuthHandler {
	return &AuthHandler{
		page:    p,
		service: service,
		config:  config,
		metrics: metrics,
	}
}

// RegisterForm は登録フォームを表示する。
// GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	data := h.data(w, r)
	data["Form"] = form.RegisterForm{}
	data["Errors"] = form.FieldErrors{}
	h.render(w, http.StatusOK, "register", data)
}

// Register は新規ユーザーを登録し、そのままログインさせる。
// 登録済みメールアドレスの場合はフラッシュメッセージを設定してログインページへ誘導する。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	f := form.ParseRegisterForm(r)
	if errs := f.Validate(); errs.HasErrors() {
		data := h.data(w, r)
		data["Form"] = f
		data["Errors"] = errs
		h.render(w, http.StatusUnprocessableEntity, "register", data)
		return
	}

	session, err := h.service.Register(r.Context(), f.Email, f.Password, f.Name)
	if err != nil {
		if appErr := appError(err); appErr != nil && appErr.Code == model.ErrCodeDuplicateEmail {
			h.flash.Set(w, appErr.Message+appErr.Action)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		serverError(w, "failed to register user", err)
		return
	}

	h.metrics.RecordUserRegistered()
	h.setSessionCookie(w, session.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm はログインフォームを表示する。
// GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := h.data(w, r)
	data["Form"] = form.LoginForm{}
	data["Errors"] = form.FieldErrors{}
	h.render(w, http.StatusOK, "login", data)
}

// Login はメールアドレスとパスワードを検証し、セッションを発行する。
// 未登録メールアドレスとパスワード不一致はどちらもフラッシュメッセージを設定して
// ログインページへリダイレクトする。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	f := form.ParseLoginForm(r)
	if errs := f.Validate(); errs.HasErrors() {
		data := h.data(w, r)
		data["Form"] = f
		data["Errors"] = errs
		h.render(w, http.StatusUnprocessableEntity, "login", data)
		return
	}

	session, err := h.service.Login(r.Context(), f.Email, f.Password)
	if err != nil {
		if appErr := appError(err); appErr != nil {
			switch appErr.Code {
			case model.ErrCodeUnknownEmail, model.ErrCodeWrongPassword:
				h.metrics.RecordLoginFailure()
				h.flash.Set(w, appErr.Message)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
		}
		serverError(w, "failed to login", err)
		return
	}

	h.setSessionCookie(w, session.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout はセッションを破棄し、トップページへリダイレクトする。
// 未ログインでも安全に呼び出せる。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			// ログアウト失敗してもCookieはクリアする
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// setSessionCookie はセッションCookieを設定する（HTTP Only）。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie はセッションCookieをクリアする。
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
