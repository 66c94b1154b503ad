package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/view"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	UserResolver middleware.CurrentUserResolver
	RateLimiter  *middleware.RateLimiter
	CSRFConfig   middleware.CSRFConfig

	// 描画
	Renderer *view.Renderer
	Flash    *view.Flash

	// サービス
	AuthService    AuthServiceInterface
	AuthConfig     AuthHandlerConfig
	PostService    PostServiceInterface
	CommentService CommentServiceInterface

	// 運用
	HealthChecker HealthChecker
	Metrics       *metrics.Collector
	Gatherer      prometheus.Gatherer
	BaseURL       string
	Logger        *slog.Logger
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Metrics → Session → Logging → CSRF
//
// 全ページが匿名閲覧可能なため、セッションミドルウェアはユーザーの注入のみを行い、
// 認証を要求するルートにはRequireAuth/RequireAdminを追加で適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	r.Use(middleware.NewSessionMiddleware(deps.UserResolver))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

	p := newPage(deps.Renderer, deps.Flash, deps.CSRFConfig)

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, p, deps.Metrics)
	postHandler := NewPostHandler(deps.PostService, deps.CommentService, p, deps.Metrics)
	pageHandler := NewPageHandler(p)
	feedHandler := NewFeedHandler(deps.PostService, deps.BaseURL)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	requireAuth := middleware.NewRequireAuth(deps.Flash)
	requireAdmin := middleware.NewRequireAdmin()

	// --- 公開ルート ---

	r.Get("/", postHandler.Index)
	r.Get("/post/{id}", postHandler.Show)
	r.Get("/about", pageHandler.About)
	r.Get("/contact", pageHandler.Contact)
	r.Get("/feed.xml", feedHandler.Feed)

	// --- 認証ルート（ログイン・登録試行はIPアドレス単位のレート制限付き） ---

	r.Get("/register", authHandler.RegisterForm)
	r.With(deps.RateLimiter.AuthMiddleware()).Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginForm)
	r.With(deps.RateLimiter.AuthMiddleware()).Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// --- 認証必須ルート ---

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		// コメント投稿（ユーザー単位のレート制限付き）
		r.With(deps.RateLimiter.CommentMiddleware()).Post("/post/{id}", postHandler.Comment)
	})

	// --- 管理者専用ルート（未認証を含む非管理者には一律403） ---

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)

		r.Get("/new-post", postHandler.NewForm)
		r.Post("/new-post", postHandler.Create)
		r.Get("/edit-post/{id}", postHandler.EditForm)
		r.Post("/edit-post/{id}", postHandler.Update)
		r.Get("/delete/{id}", postHandler.Delete)
	})

	// --- 運用ルート ---

	r.Get("/healthz", healthHandler.Health)
	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	return r
}
