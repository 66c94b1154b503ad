// Package model はドメインモデルを定義する。
package model

import "time"

// Comment は記事へのコメントを表す。Bodyはサニタイズ済みHTML。
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}

// CommentWithAuthor はコメントと投稿者情報を結合したモデル。
// usersテーブルとJOINして取得され、表示名とグラバター用のメールアドレスを含む。
type CommentWithAuthor struct {
	Comment
	AuthorName  string
	AuthorEmail string
}
