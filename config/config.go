package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Firebase FirebaseConfig
	Gemini   GeminiConfig
	Sync     SyncConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type StorageConfig struct {
	DataDir   string
	RedisAddr string // optional; switches the snapshot store to Redis
	DBDSN     string // optional; enables the Postgres prompt archive
}

type FirebaseConfig struct {
	CredentialsPath string // optional; enables the Firestore mirror
}

type GeminiConfig struct {
	APIKey        string
	PrimaryModel  string
	FallbackModel string
	RPM           float64
}

type SyncConfig struct {
	CronSpec string // six-field cron spec for the outbox sweep
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Storage: StorageConfig{
			DataDir:   getEnv("DATA_DIR", "./data"),
			RedisAddr: getEnv("REDIS_ADDR", ""),
			DBDSN:     getEnv("DB_DSN", ""),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Gemini: GeminiConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			PrimaryModel:  getEnv("GEMINI_MODEL", "gemini-3-pro-image-preview"),
			FallbackModel: getEnv("GEMINI_FALLBACK_MODEL", "gemini-2.5-flash-image"),
			RPM:           getEnvAsFloat("GEMINI_RPM", 10),
		},
		Sync: SyncConfig{
			CronSpec: getEnv("SYNC_CRON", "0 */5 * * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Storage.DataDir == "" && c.Storage.RedisAddr == "" {
		return fmt.Errorf("DATA_DIR or REDIS_ADDR is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
