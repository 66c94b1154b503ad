package view

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL はメールアドレスからGravatarのアバター画像URLを生成する。
// アドレスは前後の空白を除去し小文字化してからMD5ハッシュを取る。
// サイズ100px、レーティングg、未登録アドレスはretroパターンで表示する。
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=100&d=retro&r=g",
		hex.EncodeToString(hash[:]))
}
