package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port        string
	LogLevel    string
	Env         string
	OrderAPIURL string
	UseMockData bool
	MockLatency time.Duration
	CacheTTL    time.Duration
	RedisHost   string
	RabbitURL   string
	JWTSecret   string
	DemoBuyerID string
}

func Load() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	AppEnv = Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Env:         getEnvOrDefault("ENV", "production"),
		OrderAPIURL: getEnvOrDefault("ORDER_API_URL", "http://localhost:9000"),
		UseMockData: getBoolEnv("USE_MOCK_DATA", false),
		MockLatency: getDurationEnv("MOCK_LATENCY_MS", 300, time.Millisecond),
		CacheTTL:    getDurationEnv("CACHE_TTL_SECONDS", 60, time.Second),
		RedisHost:   getEnvOrDefault("REDIS_HOST", ""),
		RabbitURL:   getEnvOrDefault("RABBITMQ_URL", ""),
		JWTSecret:   getEnvOrDefault("JWT_SECRET", ""),
		DemoBuyerID: getEnvOrDefault("DEMO_BUYER_ID", "demo@buyer.com"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
