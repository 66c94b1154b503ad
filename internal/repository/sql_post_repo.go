package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/blogman/internal/model"
)

// SQLPostRepo はdatabase/sqlを使用したブログ記事リポジトリ。
type SQLPostRepo struct {
	db *sql.DB
}

// NewSQLPostRepo はSQLPostRepoを生成する。
func NewSQLPostRepo(db *sql.DB) *SQLPostRepo {
	return &SQLPostRepo{db: db}
}

// Create は記事を作成する。タイトルの一意制約違反時はErrDuplicateを返す。
// 同時投稿で同一タイトルが競合した場合も一意制約が調停し、敗者にErrDuplicateが返る。
func (r *SQLPostRepo) Create(ctx context.Context, post *model.BlogPost) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blog_posts (id, author_id, title, subtitle, published_on, body, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		post.ID, post.AuthorID, post.Title, post.Subtitle, post.PublishedOn,
		post.Body, post.ImageURL, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *SQLPostRepo) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	post := &model.BlogPost{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, author_id, title, subtitle, published_on, body, image_url, created_at, updated_at
		 FROM blog_posts WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.AuthorID, &post.Title, &post.Subtitle, &post.PublishedOn,
		&post.Body, &post.ImageURL, &post.CreatedAt, &post.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}

	return post, nil
}

// ListAll は全記事を作成日時の降順で取得する。
func (r *SQLPostRepo) ListAll(ctx context.Context) ([]model.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_id, title, subtitle, published_on, body, image_url, created_at, updated_at
		 FROM blog_posts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		var post model.BlogPost
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Subtitle, &post.PublishedOn,
			&post.Body, &post.ImageURL, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// Update は記事のタイトル・サブタイトル・画像URL・本文・更新日時のみを更新する。
// author_id、published_on、created_atは更新対象に含めない。
// タイトルの一意制約違反時はErrDuplicateを返す。
func (r *SQLPostRepo) Update(ctx context.Context, post *model.BlogPost) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE blog_posts
		 SET title = $1, subtitle = $2, image_url = $3, body = $4, updated_at = $5
		 WHERE id = $6`,
		post.Title, post.Subtitle, post.ImageURL, post.Body, post.UpdatedAt, post.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found: %s", post.ID)
	}
	return nil
}

// DeleteByID は指定IDの記事を削除する。関連するコメントはCASCADE削除される。
func (r *SQLPostRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM blog_posts WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ PostRepository = (*SQLPostRepo)(nil)
