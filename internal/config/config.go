package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server
	ServerPort string
	ServerHost string

	// Database
	DatabaseURL  string
	DatabaseType string // "postgres" or "sqlite"

	// JWT
	JWTSecret     string
	JWTExpiration int // hours

	// Workflow
	DueSoonDays int // forward-looking window for "due soon" counts

	// App
	AppName        string
	LeaderEmail    string
	LeaderPassword string
	LeaderName     string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		// Database
		DatabaseURL:  getEnv("DATABASE_URL", "woffu.db"),
		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),

		// JWT
		JWTSecret:     getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration: getEnvInt("JWT_EXPIRATION", 72),

		// Workflow
		DueSoonDays: getEnvInt("DUE_SOON_DAYS", 3),

		// App
		AppName:        getEnv("APP_NAME", "WOFFU"),
		LeaderEmail:    getEnv("LEADER_EMAIL", "leader@woffu.local"),
		LeaderPassword: getEnv("LEADER_PASSWORD", "leader123"),
		LeaderName:     getEnv("LEADER_NAME", "Team Leader"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
