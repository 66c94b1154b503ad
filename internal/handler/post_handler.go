package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/form"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/post"
)

// PostServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	Create(ctx context.Context, author *model.User, in post.Input) (*model.BlogPost, error)
	Get(ctx context.Context, postID string) (*model.BlogPost, error)
	List(ctx context.Context) ([]model.BlogPost, error)
	Update(ctx context.Context, editor *model.User, postID string, in post.Input) (*model.BlogPost, error)
	Delete(ctx context.Context, editor *model.User, postID string) error
}

// CommentServiceInterface はコメント操作のサービスインターフェース。
type CommentServiceInterface interface {
	Add(ctx context.Context, author *model.User, postID, body string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]model.CommentWithAuthor, error)
}

// BlogMetrics は記事・コメントハンドラーが記録するメトリクスのインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type BlogMetrics interface {
	RecordPostCreated()
	RecordCommentCreated()
}

// PostHandler は記事の閲覧・作成・編集・削除とコメント投稿のHTTPハンドラー。
type PostHandler struct {
	*page
	posts    PostServiceInterface
	comments CommentServiceInterface
	metrics  BlogMetrics
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(posts PostServiceInterface, comments CommentServiceInterface, p *page, metrics BlogMetrics) *PostHandler {
	return &PostHandler{
		page:     p,
		posts:    posts,
		comments: comments,
		metrics:  metrics,
	}
}

// Index は全記事を新しい順で一覧表示する。
// GET /
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		serverError(w, "failed to list posts", err)
		return
	}

	data := h.data(w, r)
	data["Posts"] = posts
	h.render(w, http.StatusOK, "index", data)
}

// Show は記事の詳細とコメント一覧を表示する。
// 存在しない記事IDには404を返す。
// GET /post/{id}
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	p, err := h.posts.Get(r.Context(), postID)
	if err != nil {
		if appErr := appError(err); appErr != nil && appErr.Code == model.ErrCodePostNotFound {
			http.NotFound(w, r)
			return
		}
		serverError(w, "failed to get post", err)
		return
	}

	h.renderShow(w, r, http.StatusOK, p, form.CommentForm{}, form.FieldErrors{})
}

// Comment は記事にコメントを投稿する。
// 認証必須ルート（RequireAuthの後に配置）。投稿後は記事ページへリダイレクトする。
// POST /post/{id}
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	user := userFrom(r)

	f := form.ParseCommentForm(r)
	if errs := f.Validate(); errs.HasErrors() {
		p, err := h.posts.Get(r.Context(), postID)
		if err != nil {
			if appErr := appError(err); appErr != nil && appErr.Code == model.ErrCodePostNotFound {
				http.NotFound(w, r)
				return
			}
			serverError(w, "failed to get post", err)
			return
		}
		h.renderShow(w, r, http.StatusUnprocessableEntity, p, f, errs)
		return
	}

	if _, err := h.comments.Add(r.Context(), user, postID, f.Body); err != nil {
		if appErr := appError(err); appErr != nil && appErr.Code == model.ErrCodePostNotFound {
			http.NotFound(w, r)
			return
		}
		serverError(w, "failed to add comment", err)
		return
	}

	h.metrics.RecordCommentCreated()
	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

// NewForm は記事作成フォームを表示する。管理者専用ルート。
// GET /new-post
func (h *PostHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, http.StatusOK, "", form.PostForm{}, form.FieldErrors{})
}

// Create は記事を作成し、作成された記事ページへリダイレクトする。管理者専用ルート。
// タイトル重複はフィールドエラーとしてフォームを再表示する。
// POST /new-post
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	f := form.ParsePostForm(r)
	if errs := f.Validate(); errs.HasErrors() {
		h.renderPostForm(w, r, http.StatusUnprocessableEntity, "", f, errs)
		return
	}

	p, err := h.posts.Create(r.Context(), userFrom(r), postInput(f))
	if err != nil {
		if appErr := appError(err); appErr != nil && appErr.Code == model.ErrCodeDuplicateTitle {
			h.renderPostForm(w, r, http.StatusUnprocessableEntity, "", f, form.FieldErrors{"title": appErr.Message})
			return
		}
		serverError(w, "failed to create post", err)
		return
	}

	h.metrics.RecordPostCreated()
	http.Redirect(w, r, "/post/"+p.ID, http.StatusSeeOther)
}

// EditForm は既存記事の値を埋めた編集フォームを表示する。管理者専用ルート。
// GET /edit-post/{id}
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	p, err := h.posts.Get(r.Context(), postID)
	if err != nil {
		if appErr := appError(err); appErr != nil && appErr.Code == model.ErrCodePostNotFound {
			http.NotFound(w, r)
			return
		}
		serverError(w, "failed to get post", err)
		return
	}

	f := form.PostForm{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		ImageURL: p.ImageURL,
		Body:     p.Body,
	}
	h.renderPostForm(w, r, http.StatusOK, p.ID, f, form.FieldErrors{})
}

// Update は記事を更新し、記事ページへリダイレクトする。管理者専用ルート。
// 投稿者と公開日は変更されない。
// POST /edit-post/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	f := form.ParsePostForm(r)
	if errs := f.Validate(); errs.HasErrors() {
		h.renderPostForm(w, r, http.StatusUnprocessableEntity, postID, f, errs)
		return
	}

	p, err := h.posts.Update(r.Context(), userFrom(r), postID, postInput(f))
	if err != nil {
		if appErr := appError(err); appErr != nil {
			switch appErr.Code {
			case model.ErrCodePostNotFound:
				http.NotFound(w, r)
				return
			case model.ErrCodeDuplicateTitle:
				h.renderPostForm(w, r, http.StatusUnprocessableEntity, postID, f, form.FieldErrors{"title": appErr.Message})
				return
			}
		}
		serverError(w, "failed to update post", err)
		return
	}

	http.Redirect(w, r, "/post/"+p.ID, http.StatusSeeOther)
}

// Delete は記事と関連コメントを削除し、トップページへリダイレクトする。管理者専用ルート。
// GET /delete/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	if err := h.posts.Delete(r.Context(), userFrom(r), postID); err != nil {
		if appErr := appError(err); appErr != nil && appErr.Code == model.ErrCodePostNotFound {
			http.NotFound(w, r)
			return
		}
		serverError(w, "failed to delete post", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderShow は記事詳細ページをコメント一覧付きでレンダリングする。
func (h *PostHandler) renderShow(w http.ResponseWriter, r *http.Request, status int, p *model.BlogPost, f form.CommentForm, errs form.FieldErrors) {
	comments, err := h.comments.ListByPost(r.Context(), p.ID)
	if err != nil {
		serverError(w, "failed to list comments", err)
		return
	}

	data := h.data(w, r)
	data["Post"] = p
	data["Comments"] = comments
	data["Form"] = f
	data["Errors"] = errs
	h.render(w, status, "post", data)
}

// renderPostForm は記事作成・編集フォームをレンダリングする。
// postIDが空の場合は作成フォーム、非空の場合は編集フォームとして表示する。
func (h *PostHandler) renderPostForm(w http.ResponseWriter, r *http.Request, status int, postID string, f form.PostForm, errs form.FieldErrors) {
	data := h.data(w, r)
	data["IsEdit"] = postID != ""
	data["PostID"] = postID
	data["Form"] = f
	data["Errors"] = errs
	h.render(w, status, "make_post", data)
}

// postInput は検証済みフォームをサービス層の入力値に変換する。
func postInput(f form.PostForm) post.Input {
	return post.Input{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		ImageURL: f.ImageURL,
		Body:     f.Body,
	}
}
