// Package model はドメインモデルを定義する。
package model

import "time"

// BlogPost はブログ記事を表す。
// Bodyはサニタイズ済みのリッチテキストHTML。
// PublishedOnは作成日を "January 2, 2006" 形式でフォーマットした表示用文字列で、
// 作成後は編集操作でも変更されない。
type BlogPost struct {
	ID          string
	AuthorID    string
	Title       string
	Subtitle    string
	PublishedOn string
	Body        string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublishedOnFormat はPublishedOnのフォーマット。
const PublishedOnFormat = "January 2, 2006"
