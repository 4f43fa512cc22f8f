package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	LogLevel   string

	DataSource string // "file" или "postgres"
	UsersFile  string
	StatsFile  string
	CacheTTL   time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DataSource: getEnv("DATA_SOURCE", "file"),
		UsersFile:  getEnv("USERS_FILE", "./data/users.json"),
		StatsFile:  getEnv("STATS_FILE", "./data/stats.json"),
		CacheTTL:   time.Duration(getEnvInt("CACHE_TTL_MINUTES", 5)) * time.Minute,
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "lunar_dashboard"),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
