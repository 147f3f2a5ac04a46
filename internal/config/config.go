// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"user-admin/internal/apiclient"
	"user-admin/internal/cache"
	"user-admin/internal/debounce"
	"user-admin/internal/table"
)

const DefaultLogFile = "useradmin.log"

type Config struct {
	APIURL        string
	Timeout       time.Duration
	PageSize      int
	SearchDelay   time.Duration
	LogFile       string
	StrictAHV     bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SnapshotTTL   time.Duration
}

// Default 回傳未讀取環境變數時的設定
func Default() Config {
	return Config{
		Timeout:     apiclient.DefaultTimeout,
		PageSize:    table.DefaultPageSize,
		SearchDelay: debounce.DefaultDelay,
		LogFile:     DefaultLogFile,
		SnapshotTTL: cache.DefaultSnapshotTTL,
	}
}

// Load 讀取 envFile（不存在則略過）後再由環境變數組出設定。
// envFile 為空時使用 .env
func Load(envFile string) (Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return Config{}, fmt.Errorf("讀取 %s 失敗: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Unset keys keep their defaults;
// malformed values are errors.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	c.APIURL = getenv("USERADMIN_API_URL")
	if c.APIURL == "" {
		c.APIURL = getenv("NEXT_PUBLIC_MONGO_API")
	}
	if v := getenv("USERADMIN_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	c.RedisAddr = getenv("REDIS_ADDR")
	c.RedisPassword = getenv("REDIS_PASSWORD")

	var err error
	if c.Timeout, err = duration(getenv, "USERADMIN_TIMEOUT", c.Timeout); err != nil {
		return Config{}, err
	}
	if c.SearchDelay, err = duration(getenv, "USERADMIN_SEARCH_DELAY", c.SearchDelay); err != nil {
		return Config{}, err
	}
	if c.SnapshotTTL, err = duration(getenv, "USERADMIN_SNAPSHOT_TTL", c.SnapshotTTL); err != nil {
		return Config{}, err
	}
	if v := getenv("USERADMIN_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("無效的 USERADMIN_PAGE_SIZE: %q", v)
		}
		c.PageSize = n
	}
	if v := getenv("USERADMIN_STRICT_AHV"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("無效的 USERADMIN_STRICT_AHV: %q", v)
		}
		c.StrictAHV = b
	}
	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("無效的 REDIS_DB: %q", v)
		}
		c.RedisDB = n
	}
	return c, nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}

// Validate 檢查必填設定，於 flag 覆寫之後呼叫
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("環境變數 USERADMIN_API_URL 未設定")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("無效的 page size: %d", c.PageSize)
	}
	return nil
}

// SnapshotsEnabled reports whether a Redis address is configured.
func (c Config) SnapshotsEnabled() bool { return c.RedisAddr != "" }
