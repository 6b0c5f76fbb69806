// Package config はサーバー全体の設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config はサーバー起動に必要な設定一式です。
// すべて環境変数から読み込まれ、未指定の項目は既定値になります。
type Config struct {
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`

	// 上流ETF APIのベースURL。
	APIBaseURL string `env:"ETF_API_BASE_URL" envDefault:"http://localhost:8081"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// ユーザー設定を保存するSQLiteファイルのパス。
	PrefsDBPath string `env:"PREFS_DB_PATH" envDefault:"prefs.db"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// 市場データ応答キャッシュのTTL。0以下なら翌朝8時（KST）までになります。
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"0"`

	// ライブ検索の入力静止待ち時間。
	SearchQuiet time.Duration `env:"SEARCH_QUIET" envDefault:"500ms"`
}

// Load は環境変数からConfigを組み立てます。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
