package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/blogman/internal/model"
)

// SQLCommentRepo はdatabase/sqlを使用したコメントリポジトリ。
type SQLCommentRepo struct {
	db *sql.DB
}

// NewSQLCommentRepo はSQLCommentRepoを生成する。
func NewSQLCommentRepo(db *sql.DB) *SQLCommentRepo {
	return &SQLCommentRepo{db: db}
}

// Create はコメントを作成する。
func (r *SQLCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, author_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.PostID, comment.AuthorID, comment.Body, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// ListByPostID は指定記事のコメントを投稿者情報付きで作成日時の昇順で取得する。
// usersテーブルとJOINし、表示名とグラバター用のメールアドレスを含める。
func (r *SQLCommentRepo) ListByPostID(ctx context.Context, postID string) ([]model.CommentWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.author_id, c.body, c.created_at, u.name, u.email
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.CommentWithAuthor
	for rows.Next() {
		var c model.CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt,
			&c.AuthorName, &c.AuthorEmail); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// compile-time interface check
var _ CommentRepository = (*SQLCommentRepo)(nil)
