// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/view"
)

const sessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var userContextKey = contextKey("user")

// CurrentUserResolver はセッションIDからユーザーを解決するインターフェース。
// auth.Serviceの部分集合として定義する。
type CurrentUserResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)
}

// NewSessionMiddleware はHTTP Only CookieからセッションIDを読み取り、
// 対応するユーザーをリクエストコンテキストに注入するミドルウェアを返す。
// 全ページが匿名閲覧可能なため、未認証リクエストも拒否せずに通過させる。
// 認証を要求するルートはRequireAuth/RequireAdminを追加で適用する。
func NewSessionMiddleware(resolver CurrentUserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.CurrentUser(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("failed to resolve session user",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				// 期限切れまたは無効なセッション。匿名として扱う。
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 未認証の場合はnilを返す。
func UserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// ContextWithUser はコンテキストにユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// NewRequireAuth は認証済みユーザーを要求するミドルウェアを返す。
// 未認証の場合はフラッシュメッセージを設定してログインページへリダイレクトする。
func NewRequireAuth(flash *view.Flash) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFromContext(r.Context()) == nil {
				flash.Set(w, model.NewLoginRequiredError().Message)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRequireAdmin は管理者権限を要求するミドルウェアを返す。
// 未認証または一般ユーザーの場合は403 Forbiddenを返す。
func NewRequireAdmin() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if !user.IsAdmin() {
				slog.Warn("admin route denied",
					slog.String("path", r.URL.Path),
				)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
