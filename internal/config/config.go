package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Upload   UploadConfig
	Ai       AIConfig
	Report   ReportConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	ActivityTopic      string
}

type StoreConfig struct {
	Backend           string // "memory", "redis" or "postgres"
	RedisURL          string
	SessionTTLMinutes int
}

type DatabaseConfig struct {
	Connection string
}

type UploadConfig struct {
	MaxFileSizeMB int
}

type AIConfig struct {
	LLMProvider            string // "groq", "ollama" or "none"
	LLMModel               string
	OllamaBaseURL          string
	GroqAPIKey             string
	DelegateTimeoutSeconds int
}

type ReportConfig struct {
	Dir   string
	Title string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			ActivityTopic:      getEnv("ACTIVITY_TOPIC_NAME", "SESSION_ACTIVITY"),
		},
		Store: StoreConfig{
			Backend:           getEnv("SESSION_STORE", "memory"),
			RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 24*60),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: getEnvAsInt("MAX_FILE_SIZE_MB", 200),
		},
		Ai: AIConfig{
			LLMProvider:            getEnv("LLM_PROVIDER", "groq"),
			LLMModel:               getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
			OllamaBaseURL:          getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GroqAPIKey:             getEnv("GROQ_API_KEY", ""),
			DelegateTimeoutSeconds: getEnvAsInt("NLQ_DELEGATE_TIMEOUT_SECONDS", 8),
		},
		Report: ReportConfig{
			Dir:   getEnv("REPORTS_DIR", "outputs/reports"),
			Title: getEnv("REPORT_TITLE", "Business Data Analysis Report"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
