package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	AI       AIConfig
	Telegram TelegramConfig
	Watcher  WatcherConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Addr string
}

type AIConfig struct {
	APIKey  string // Gemini API key; delegates are disabled when empty
	Model   string
	Timeout time.Duration
}

type TelegramConfig struct {
	KitchenToken  string // bot token for kitchen alerts, optional
	KitchenChatID int64  // chat that receives new-order alerts
}

type WatcherConfig struct {
	PollInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	chatID, _ := strconv.ParseInt(getEnv("KITCHEN_CHAT_ID", "0"), 10, 64)
	aiTimeout, _ := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "5"))
	pollSeconds, _ := strconv.Atoi(getEnv("WATCH_POLL_SECONDS", "3"))

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "qrdine"),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		AI: AIConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: time.Duration(aiTimeout) * time.Second,
		},
		Telegram: TelegramConfig{
			KitchenToken:  getEnv("KITCHEN_BOT_TOKEN", ""),
			KitchenChatID: chatID,
		},
		Watcher: WatcherConfig{
			PollInterval: time.Duration(pollSeconds) * time.Second,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
