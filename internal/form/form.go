// Package form はフォーム入力の型付き構造体と純粋関数による検証を提供する。
// 各フォームはHTTPリクエストから値を取り出すパース関数と、
// フィールド単位のエラーを返すValidateメソッドを持つ。
// 検証を通過するまで永続化層には一切触れない。
package form

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/hitoshi/blogman/internal/security"
)

// FieldErrors はフィールド名からエラーメッセージへのマッピング。
// 空の場合は検証成功を表す。
type FieldErrors map[string]string

// HasErrors は検証エラーが1件以上あるかを返す。
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// RegisterForm はユーザー登録フォームの入力値。
type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

// ParseRegisterForm はリクエストから登録フォームの値を取り出す。
func ParseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
}

// Validate は登録フォームを検証する。
// 名前は非空、メールアドレスは形式チェック、パスワードは非空
// （強度ポリシーは課さない）。
func (f RegisterForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.Name == "" {
		errs["name"] = "名前を入力してください。"
	}
	if f.Email == "" {
		errs["email"] = "メールアドレスを入力してください。"
	} else if !isValidEmail(f.Email) {
		errs["email"] = "メールアドレスの形式が正しくありません。"
	}
	if f.Password == "" {
		errs["password"] = "パスワードを入力してください。"
	}
	return errs
}

// LoginForm はログインフォームの入力値。
type LoginForm struct {
	Email    string
	Password string
}

// ParseLoginForm はリクエストからログインフォームの値を取り出す。
func ParseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
}

// Validate はログインフォームを検証する。メールアドレスとパスワードの非空のみ。
func (f LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.Email == "" {
		errs["email"] = "メールアドレスを入力してください。"
	}
	if f.Password == "" {
		errs["password"] = "パスワードを入力してください。"
	}
	return errs
}

// PostForm は記事作成・編集フォームの入力値。
type PostForm struct {
	Title    string
	Subtitle string
	ImageURL string
	Body     string
}

// ParsePostForm はリクエストから記事フォームの値を取り出す。
func ParsePostForm(r *http.Request) PostForm {
	return PostForm{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Subtitle: strings.TrimSpace(r.FormValue("subtitle")),
		ImageURL: strings.TrimSpace(r.FormValue("image_url")),
		Body:     r.FormValue("body"),
	}
}

// Validate は記事フォームを検証する。
// タイトルと本文は非空、画像URLは形式と安全性をチェックする。
// タイトルの一意性はここでは検証せず、永続化時の一意制約に委ねる。
func (f PostForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.Title == "" {
		errs["title"] = "タイトルを入力してください。"
	}
	if f.ImageURL == "" {
		errs["image_url"] = "ヘッダー画像のURLを入力してください。"
	} else if err := security.ValidateImageURL(f.ImageURL); err != nil {
		errs["image_url"] = "画像URLの形式が正しくありません。"
	}
	if strings.TrimSpace(f.Body) == "" {
		errs["body"] = "本文を入力してください。"
	}
	return errs
}

// CommentForm はコメントフォームの入力値。
type CommentForm struct {
	Body string
}

// ParseCommentForm はリクエストからコメントフォームの値を取り出す。
func ParseCommentForm(r *http.Request) CommentForm {
	return CommentForm{
		Body: r.FormValue("body"),
	}
}

// Validate はコメントフォームを検証する。本文の非空のみ。
func (f CommentForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Body) == "" {
		errs["body"] = "コメントを入力してください。"
	}
	return errs
}

// isValidEmail はメールアドレスの形式を検証する。
// mail.ParseAddressは表示名付きアドレスも受理するため、
// パース結果のアドレスが入力と一致することも確認する。
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
