package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// internalErrorPage はpanic回復時に返すエラーページ。
// レンダラー自体が壊れている可能性があるのでテンプレートには依存しない。
const internalErrorPage = `<!DOCTYPE html>
<html lang="ja">
<head><meta charset="utf-8"><title>サーバーエラー</title></head>
<body>
<h1>サーバーエラーが発生しました</h1>
<p>時間をおいて<a href="/">トップページ</a>からやり直してください。</p>
</body>
</html>
`

// NewRecoveryMiddleware はpanic発生時にプロセスクラッシュを防ぎ、
// 500のエラーページを返すミドルウェアを生成する。
func NewRecoveryMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					io.WriteString(w, internalErrorPage)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
