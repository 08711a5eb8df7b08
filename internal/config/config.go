package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	ActivityTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider      string // "nvidia" or "ollama"
	Model         string
	NvidiaAPIKey  string
	NvidiaBaseURL string
	OllamaBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8080, http://localhost:3000"),
			ActivityTopic:      getEnv("NOTE_ACTIVITY_TOPIC_NAME", "NOTE_ACTIVITY"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "nvidia"),
			Model:         getEnv("LLM_MODEL", ""),
			NvidiaAPIKey:  getEnv("NVIDIA_API_KEY", ""),
			NvidiaBaseURL: getEnv("NVIDIA_API_BASE", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
