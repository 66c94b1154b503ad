// Package comment は記事コメントに関するビジネスロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// PostFinder はコメント対象記事の存在確認に必要なインターフェース。
// repository.PostRepositoryの部分集合として定義する。
type PostFinder interface {
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
}

// Service はコメントに関するビジネスロジックを提供する。
type Service struct {
	commentRepo repository.CommentRepository
	postFinder  PostFinder
	sanitizer   security.ContentSanitizer
}

// NewService はServiceを生成する。
func NewService(
	commentRepo repository.CommentRepository,
	postFinder PostFinder,
	sanitizer security.ContentSanitizer,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		postFinder:  postFinder,
		sanitizer:   sanitizer,
	}
}

// Add は認証済みユーザーのコメントを記事に追加する。
// 未ログイン（authorがnil)の場合はLOGIN_REQUIREDエラーを返し、何も永続化しない。
// 対象記事が存在しない場合はPOST_NOT_FOUNDエラーを返す。本文はサニタイズされる。
func (s *Service) Add(ctx context.Context, author *model.User, postID, body string) (*model.Comment, error) {
	if author == nil {
		return nil, model.NewLoginRequiredError()
	}

	post, err := s.postFinder.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	c := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    post.ID,
		AuthorID:  author.ID,
		Body:      s.sanitizer.Sanitize(body),
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment added",
		slog.String("comment_id", c.ID),
		slog.String("post_id", post.ID),
		slog.String("author_id", author.ID),
	)
	return c, nil
}

// ListByPost は指定記事のコメントを投稿者情報付きで古い順に取得する。
func (s *Service) ListByPost(ctx context.Context, postID string) ([]model.CommentWithAuthor, error) {
	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
