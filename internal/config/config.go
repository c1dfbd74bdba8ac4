package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Ai      AIConfig
	Events  EventsConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	PersonaFile        string // optional YAML overlay on the built-in personas
}

type StorageConfig struct {
	Driver      string // "memory", "file", "redis", "postgres", "bolt"
	FileDir     string
	BoltPath    string
	RedisURL    string
	RedisPrefix string
	Connection  string
}

type AIConfig struct {
	LLMProvider       string // "groq", "openai", "ollama", "mock"
	LLMModel          string
	GroqAPIKey        string
	GroqBaseURL       string
	OllamaBaseURL     string
	ContextWindowSize int
}

type EventsConfig struct {
	NatsEnabled       bool
	NatsURL           string
	ExchangeTopicName string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			PersonaFile:        getEnv("PERSONA_FILE", ""),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "file")),
			FileDir:     getEnv("STORAGE_FILE_DIR", "./data"),
			BoltPath:    getEnv("BOLT_PATH", "./data/brain.db"),
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
			RedisPrefix: getEnv("REDIS_KEY_PREFIX", "brain:"),
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
			LLMModel:          getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:       getEnv("GROQ_BASE_URL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ContextWindowSize: getEnvAsInt("CONTEXT_WINDOW_SIZE", 10),
		},
		Events: EventsConfig{
			NatsEnabled:       getEnvAsBool("NATS_ENABLED", false),
			NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
			ExchangeTopicName: getEnv("CHAT_EXCHANGE_TOPIC_NAME", "CHAT_EXCHANGE"),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// BaseURL returns the provider base URL for the configured LLM provider.
func (c AIConfig) BaseURL() string {
	if c.LLMProvider == "ollama" {
		return c.OllamaBaseURL
	}
	return c.GroqBaseURL
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
