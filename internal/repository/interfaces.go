// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/blogman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// usersテーブルが空の場合は同一トランザクション内でuser.RoleをRoleAdminに
	// 昇格させてから挿入する（最初に登録したユーザーが管理者になる）。
	// メールアドレスの一意制約違反時はErrDuplicateを返す。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れまたは未検出の場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。存在しない場合もエラーにしない。
	DeleteByID(ctx context.Context, id string) error
	// DeleteExpired は期限がbeforeより前のセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// PostRepository はブログ記事の永続化インターフェース。
type PostRepository interface {
	// Create は記事を作成する。タイトルの一意制約違反時はErrDuplicateを返す。
	Create(ctx context.Context, post *model.BlogPost) error

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)

	// ListAll は全記事を作成日時の降順で取得する。
	ListAll(ctx context.Context) ([]model.BlogPost, error)

	// Update は記事のタイトル・サブタイトル・画像URL・本文・更新日時のみを更新する。
	// 投稿者と作成日は変更されない。タイトルの一意制約違反時はErrDuplicateを返す。
	Update(ctx context.Context, post *model.BlogPost) error

	// DeleteByID は指定IDの記事を削除する。
	// 関連するコメントはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// CommentRepository はコメントの永続化インターフェース。
type CommentRepository interface {
	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error

	// ListByPostID は指定記事のコメントを投稿者情報付きで作成日時の昇順で取得する。
	ListByPostID(ctx context.Context, postID string) ([]model.CommentWithAuthor, error)
}
