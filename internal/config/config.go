package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config 应用配置
type Config struct {
	Env         string
	DatabaseURL string `validate:"required"`
	Port        string `validate:"required"`

	// 数据导入相关
	DataDir      string  `validate:"required"`
	BatchSize    int     `validate:"gt=0"`
	MinVotes     int     `validate:"gte=0"`
	MaxSkipRatio float64 `validate:"gte=0,lte=1"`

	// 路径搜索相关
	MaxNodes      int `validate:"gt=0"`
	ContactsCache int `validate:"gt=0"`

	// TMDB 图片接口
	TMDBToken string
	ImageDir  string `validate:"required"`
}

// Load 加载配置
func Load() (*Config, error) {
	batchSize, _ := strconv.Atoi(getEnv("BATCH_SIZE", "100000"))
	minVotes, _ := strconv.Atoi(getEnv("MIN_VOTES", "20"))
	maxNodes, _ := strconv.Atoi(getEnv("MAX_NODES", "1000000"))
	contactsCache, _ := strconv.Atoi(getEnv("CONTACTS_CACHE_SIZE", "10000"))
	maxSkipRatio, _ := strconv.ParseFloat(getEnv("MAX_SKIP_RATIO", "0.10"), 64)

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "sixdegrees")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		DatabaseURL:   dbURL,
		Port:          getEnv("PORT", "5008"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		BatchSize:     batchSize,
		MinVotes:      minVotes,
		MaxSkipRatio:  maxSkipRatio,
		MaxNodes:      maxNodes,
		ContactsCache: contactsCache,
		TMDBToken:     getEnv("TMDB_TOKEN", ""),
		ImageDir:      getEnv("IMAGE_DIR", "./images"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
