package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gummy-store/models"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DatabaseURL   string
	MigrationsDir string

	JWTSecret  string
	SessionTTL time.Duration
	AdminTTL   time.Duration

	AdminEmail        string
	AdminPasswordHash string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	StripeSecretKey string

	PixAPIURL string
	PixAPIKey string

	PixPollInterval  time.Duration
	CardConfirmDelay time.Duration

	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8082")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "gummy_store"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "database/migration"),

		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		SessionTTL: getDuration("SESSION_TTL", 720*time.Hour),
		AdminTTL:   getDuration("ADMIN_TOKEN_TTL", 12*time.Hour),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		PixAPIURL: getEnv("PIX_API_URL", "https://pixgo.org/api/v1"),
		PixAPIKey: os.Getenv("PIX_API_KEY"),

		PixPollInterval:  getDuration("PIX_POLL_INTERVAL", 5*time.Second),
		CardConfirmDelay: getDuration("CARD_CONFIRM_DELAY", 2*time.Second),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
	if AppConfig.PixAPIKey == "" {
		log.Println("Warning: PIX_API_KEY not set, PIX checkout will be rejected by the provider")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func (c *Config) Redis() models.RedisSettings {
	return models.RedisSettings{
		URL:      c.RedisURL,
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s (%q), using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
