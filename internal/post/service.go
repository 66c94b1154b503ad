// Package post はブログ記事に関するビジネスロジックを提供する。
package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// Input は記事の作成・編集の入力値。検証済みのフォーム値を受け取る。
type Input struct {
	Title    string
	Subtitle string
	ImageURL string
	Body     string
}

// Service は記事に関するビジネスロジックを提供する。
// 作成・編集・削除は管理者のみに許可され、ハンドラー側のゲートに加えて
// サービス層でも権限を検証する。
type Service struct {
	postRepo  repository.PostRepository
	sanitizer security.ContentSanitizer
}

// NewService はServiceを生成する。
func NewService(postRepo repository.PostRepository, sanitizer security.ContentSanitizer) *Service {
	return &Service{
		postRepo:  postRepo,
		sanitizer: sanitizer,
	}
}

// Create は記事を作成する。
// 作成者は管理者でなければならずFORBIDDENエラーを返す。
// 本文はサニタイズされ、公開日は作成日の表示用文字列として固定される。
// タイトルが既存記事と重複する場合はDUPLICATE_TITLEエラーを返す。
func (s *Service) Create(ctx context.Context, author *model.User, in Input) (*model.BlogPost, error) {
	if !author.IsAdmin() {
		return nil, model.NewForbiddenError()
	}

	now := time.Now()
	post := &model.BlogPost{
		ID:          uuid.New().String(),
		AuthorID:    author.ID,
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		PublishedOn: now.Format(model.PublishedOnFormat),
		Body:        s.sanitizer.Sanitize(in.Body),
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewDuplicateTitleError(in.Title)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", author.ID),
	)
	return post, nil
}

// Get は指定IDの記事を取得する。見つからない場合はPOST_NOT_FOUNDエラーを返す。
func (s *Service) Get(ctx context.Context, postID string) (*model.BlogPost, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}
	return post, nil
}

// List は全記事を新しい順で取得する。
func (s *Service) List(ctx context.Context) ([]model.BlogPost, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Update は記事のタイトル・サブタイトル・画像URL・本文を更新する。
// 投稿者・公開日・IDは変更されない。編集者は管理者でなければならない。
// 存在しない記事はPOST_NOT_FOUND、タイトル重複はDUPLICATE_TITLEエラーを返す。
func (s *Service) Update(ctx context.Context, editor *model.User, postID string, in Input) (*model.BlogPost, error) {
	if !editor.IsAdmin() {
		return nil, model.NewForbiddenError()
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.ImageURL = in.ImageURL
	post.Body = s.sanitizer.Sanitize(in.Body)
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewDuplicateTitleError(in.Title)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	slog.Info("post updated",
		slog.String("post_id", post.ID),
		slog.String("editor_id", editor.ID),
	)
	return post, nil
}

// Delete は記事を削除する。関連するコメントも削除される。
// 削除者は管理者でなければならない。存在しない記事はPOST_NOT_FOUNDエラーを返す。
func (s *Service) Delete(ctx context.Context, editor *model.User, postID string) error {
	if !editor.IsAdmin() {
		return model.NewForbiddenError()
	}

	if _, err := s.Get(ctx, postID); err != nil {
		return err
	}

	if err := s.postRepo.DeleteByID(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	slog.Info("post deleted",
		slog.String("post_id", postID),
		slog.String("editor_id", editor.ID),
	)
	return nil
}
