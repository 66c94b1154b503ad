// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの権限区分を表す。
type Role string

const (
	// RoleAdmin は記事の作成・編集・削除が許可された管理者。
	// 最初に登録したユーザーに付与される。
	RoleAdmin Role = "admin"
	// RoleMember はコメント投稿のみ許可された一般ユーザー。
	RoleMember Role = "member"
)

// User はブログの登録ユーザーを表す。
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin は記事の作成・編集・削除権限を持つかを返す。
// nilレシーバーは匿名ユーザーとして扱い、falseを返す。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
