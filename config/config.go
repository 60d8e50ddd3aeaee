package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Inference InferenceConfig
	Publish   PublishConfig
	Redis     RedisConfig
	App       AppConfig
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	UsersFile string
	BackupDir string
}

type InferenceConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
}

type PublishConfig struct {
	Token  string
	TeamID string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
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
			Port: getEnv("PORT", "8000"),
		},
		Store: StoreConfig{
			UsersFile: getEnv("USERS_FILE", "payments.json"),
			BackupDir: getEnv("BACKUP_DIR", "backups"),
		},
		Inference: InferenceConfig{
			// HF_TOKEN is the legacy name for the same credential.
			APIKey:      getEnv("INFERENCE_API_KEY", os.Getenv("HF_TOKEN")),
			BaseURL:     getEnv("INFERENCE_BASE_URL", ""),
			Model:       getEnv("INFERENCE_MODEL", ""),
			VisionModel: getEnv("INFERENCE_VISION_MODEL", ""),
		},
		Publish: PublishConfig{
			Token:  getEnv("VERCEL_ACCESS_TOKEN", ""),
			TeamID: getEnv("VERCEL_TEAM_ID", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
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

	if c.Inference.APIKey == "" {
		return fmt.Errorf("INFERENCE_API_KEY is required")
	}

	if c.Store.UsersFile == "" {
		return fmt.Errorf("USERS_FILE is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
