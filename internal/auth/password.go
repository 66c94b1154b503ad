package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword は平文パスワードをbcryptでハッシュ化する。
// ソルト付き反復ハッシュであり、同一パスワードでも毎回異なるハッシュになる。
// パスワードのハッシュ化と照合はこのパッケージ以外で行わないこと。
func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// verifyPassword はハッシュと平文パスワードを照合する。一致しない場合はfalseを返す。
func verifyPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
