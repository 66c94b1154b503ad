package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSessionSecret はSESSION_SECRET未設定時の開発用デフォルト値。
// この値のまま起動した場合は起動ログに警告が出力される。
const DefaultSessionSecret = "insecure-dev-session-secret"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	// DATABASE_URL。デフォルトはローカルのファイルベースストア（sqlite3://blog.db）。
	// postgres:// スキームを指定するとPostgreSQLに接続する。
	DatabaseURL string

	// Session
	SessionSecret string
	SessionMaxAge int

	// Rate Limit（req/min）
	RateLimitAuth    int
	RateLimitComment int

	// Cleanup
	SessionCleanupInterval time.Duration

	// Server
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure bool
	CookieDomain string
}

// Load は環境変数からConfigを読み込む。
// すべての項目にデフォルト値があり、未設定でもローカル起動できる。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = getEnvString("DATABASE_URL", "sqlite3://blog.db")
	cfg.SessionSecret = getEnvString("SESSION_SECRET", DefaultSessionSecret)
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.RateLimitAuth = getEnvInt("RATE_LIMIT_AUTH", 10)
	cfg.RateLimitComment = getEnvInt("RATE_LIMIT_COMMENT", 30)
	cfg.SessionCleanupInterval = getEnvDuration("SESSION_CLEANUP_INTERVAL", 24*time.Hour)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")

	return cfg, nil
}

// IsDefaultSessionSecret はセッション署名鍵が開発用デフォルトのままかを返す。
func (c *Config) IsDefaultSessionSecret() bool {
	return c.SessionSecret == DefaultSessionSecret
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
