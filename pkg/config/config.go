package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	Environment      string
	FirebaseProject  string
	FirebaseApiKey   string
	StorageBucket    string
	RedisAddr        string
	RedisPassword    string
	NominatimBaseURL string
	GeminiApiKey     string
	GeminiModel      string
	ReportDailyLimit int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		FirebaseProject:  getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:   getEnv("FIREBASE_API_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeminiApiKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ReportDailyLimit: getEnvAsInt("REPORT_DAILY_LIMIT", 5),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
