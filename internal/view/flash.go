package view

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

const flashCookieName = "flash"

// Flash は一度だけ表示される通知メッセージをCookieで運ぶ。
// 値はSESSION_SECRETでHMAC署名され、改ざんされたメッセージは破棄される。
type Flash struct {
	secret []byte
	secure bool
}

// NewFlash はFlashを生成する。secretにはセッション署名鍵を渡す。
// secureはセッションCookieと同じCookieSecure設定を渡す。
func NewFlash(secret string, secure bool) *Flash {
	return &Flash{secret: []byte(secret), secure: secure}
}

// Set は次のページ表示で一度だけ表示される通知メッセージを設定する。
func (f *Flash) Set(w http.ResponseWriter, message string) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(message))
	value := payload + "." + f.sign(payload)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop は通知メッセージを取り出し、Cookieを削除する。
// メッセージが無い、または署名検証に失敗した場合は空文字列を返す。
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	// 取り出したら必ず削除する（一度だけ表示）
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})

	payload, sig, found := strings.Cut(cookie.Value, ".")
	if !found {
		return ""
	}
	if !hmac.Equal([]byte(f.sign(payload)), []byte(sig)) {
		return ""
	}

	message, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return ""
	}
	return string(message)
}

// sign はペイロードのHMAC-SHA256署名をhex文字列で返す。
func (f *Flash) sign(payload string) string {
	mac := hmac.New(sha256.New, f.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
