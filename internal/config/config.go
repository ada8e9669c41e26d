package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	StoreDriver  string
	MongoURI     string
	MongoURISet  bool
	DatabaseName string

	TokenSecret string
	TokenTTL    time.Duration
	BcryptCost  int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	DownloadTTL    time.Duration

	CORSOrigins string
}

const DefaultTokenSecret = "change-me"

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using environment variables")
	}

	mongoURI := firstEnv("MONGO_URI", "DATABASE_URL")

	cfg := Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8000),

		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		MongoURI:     fallback(mongoURI, "mongodb://localhost:27017"),
		MongoURISet:  mongoURI != "",
		DatabaseName: getEnv("DATABASE_NAME", "edusphere"),

		TokenSecret: getEnv("TOKEN_SECRET", DefaultTokenSecret),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 0),
		BcryptCost:  getEnvInt("BCRYPT_COST", 10),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioBucket:    getEnv("MINIO_BUCKET", "edusphere-files"),
		DownloadTTL:    getEnvDuration("DOWNLOAD_URL_TTL", 15*time.Minute),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}

	if cfg.TokenSecret == DefaultTokenSecret && cfg.Env != "dev" {
		slog.Warn("TOKEN_SECRET not set, tokens are signed with the default secret", "env", cfg.Env)
	}
	return cfg
}

// StorageEnabled reports whether object storage for product files is configured.
func (c Config) StorageEnabled() bool {
	return c.MinioEndpoint != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean in environment, using default", "key", key, "value", v)
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
			return fallback
		}
		return d
	}
	return fallback
}
