// Package model はドメインモデルを定義する。
package model

import "fmt"

// AppError は統一エラーフォーマットを表す。
// 画面に表示する原因カテゴリと対処方法を含む。
type AppError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ（フラッシュ通知やフィールドエラーとして表示される）
	Category string // カテゴリ: auth, validation, blog, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateEmail = "DUPLICATE_EMAIL"
	ErrCodeUnknownEmail   = "UNKNOWN_EMAIL"
	ErrCodeWrongPassword  = "WRONG_PASSWORD"
	ErrCodeLoginRequired  = "LOGIN_REQUIRED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodePostNotFound   = "POST_NOT_FOUND"
	ErrCodeDuplicateTitle = "DUPLICATE_TITLE"
)

// NewDuplicateEmailError は登録済みメールアドレスでの再登録エラーを生成する。
func NewDuplicateEmailError(email string) *AppError {
	return &AppError{
		Code:     ErrCodeDuplicateEmail,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "登録済みのアカウントでログインしてください。",
	}
}

// NewUnknownEmailError は未登録メールアドレスでのログインエラーを生成する。
func NewUnknownEmailError(email string) *AppError {
	return &AppError{
		Code:     ErrCodeUnknownEmail,
		Message:  "そのメールアドレスは登録されていません。",
		Category: "auth",
		Action:   "メールアドレスを確認するか、新規登録してください。",
	}
}

// NewWrongPasswordError はパスワード不一致エラーを生成する。
func NewWrongPasswordError() *AppError {
	return &AppError{
		Code:     ErrCodeWrongPassword,
		Message:  "パスワードが正しくありません。",
		Category: "auth",
		Action:   "パスワードを確認して再度お試しください。",
	}
}

// NewLoginRequiredError は未ログインでの認証必須操作エラーを生成する。
func NewLoginRequiredError() *AppError {
	return &AppError{
		Code:     ErrCodeLoginRequired,
		Message:  "コメントの投稿にはログインまたは新規登録が必要です。",
		Category: "auth",
		Action:   "ログインしてから再度お試しください。",
	}
}

// NewForbiddenError は管理者権限が必要な操作への権限不足エラーを生成する。
func NewForbiddenError() *AppError {
	return &AppError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "管理者アカウントでログインしてください。",
	}
}

// NewPostNotFoundError は記事未検出エラーを生成する。
func NewPostNotFoundError(postID string) *AppError {
	return &AppError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された記事が見つかりません: %s", postID),
		Category: "blog",
		Action:   "記事一覧から記事を選び直してください。",
	}
}

// NewDuplicateTitleError は記事タイトル重複エラーを生成する。
// 一意制約違反（同時投稿の競合を含む）をフィールドエラーとして表示するために使用する。
func NewDuplicateTitleError(title string) *AppError {
	return &AppError{
		Code:     ErrCodeDuplicateTitle,
		Message:  fmt.Sprintf("このタイトルの記事は既に存在します: %s", title),
		Category: "validation",
		Action:   "別のタイトルを指定してください。",
	}
}
