// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/view"
)

const sessionCookieName = "session_id"

// page はHTMLを返すハンドラーが共有する描画の依存関係。
// 各ハンドラーに埋め込んで使用する。
type page struct {
	renderer *view.Renderer
	flash    *view.Flash
	csrf     middleware.CSRFConfig
}

// newPage はpageを生成する。
func newPage(renderer *view.Renderer, flash *view.Flash, csrf middleware.CSRFConfig) *page {
	return &page{
		renderer: renderer,
		flash:    flash,
		csrf:     csrf,
	}
}

// data は全ページ共通のテンプレートデータを構築する。
// User（未ログイン時はnil）、Flash、CSRFTokenを含む。
func (p *page) data(w http.ResponseWriter, r *http.Request) map[string]any {
	return map[string]any{
		"User":      middleware.UserFromContext(r.Context()),
		"Flash":     p.flash.Pop(w, r),
		"CSRFToken": middleware.EnsureCSRFToken(w, r, p.csrf),
	}
}

// render はページをレンダリングする。
func (p *page) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	p.renderer.Render(w, status, name, data)
}

// userFrom はリクエストコンテキストから認証済みユーザーを取得する。
// 未ログインの場合はnilを返す。
func userFrom(r *http.Request) *model.User {
	return middleware.UserFromContext(r.Context())
}

// serverError は想定外のエラーをログに記録し、500を返す。
func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, slog.String("error", err.Error()))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// appError はerrからAppErrorを取り出す。AppErrorでない場合はnilを返す。
func appError(err error) *model.AppError {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
