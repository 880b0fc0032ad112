package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	Environment          string
	AllowedOrigins       []string
	FrontendURL          string
	DBDriver             string // "postgres" or "sqlite"
	DatabaseURL          string
	SQLitePath           string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	DBAutoMigrate        bool
	RedisURL             string
	RedisPassword        string
	JWTSecret            string
	JWTExpirationHours   int
	AIInitialDepth       int
	AIEndgameThreshold   int
	SessionIdleTimeout   time.Duration
	SessionCacheTTL      time.Duration
	CleanupInterval      time.Duration
	StaticDir            string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Database Config
	dbDriver := strings.ToLower(GetEnv("DB_DRIVER", "postgres"))
	if dbDriver != "postgres" && dbDriver != "sqlite" {
		log.Printf("Unknown DB_DRIVER %q, using postgres", dbDriver)
		dbDriver = "postgres"
	}

	AppConfig = &Config{
		Port:                 port,
		Environment:          GetEnv("ENVIRONMENT", "development"),
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		DBDriver:             dbDriver,
		DatabaseURL:          GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		SQLitePath:           GetEnv("SQLITE_PATH", "tictactoe.db"),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		DBAutoMigrate:        GetEnvAsBool("DB_AUTO_MIGRATE", true),
		RedisURL:             GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:            GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		JWTExpirationHours:   GetEnvAsInt("JWT_EXPIRATION_HOURS", 72),
		AIInitialDepth:       GetEnvAsInt("AI_INITIAL_DEPTH", 2),
		AIEndgameThreshold:   GetEnvAsInt("AI_ENDGAME_THRESHOLD", 5),
		SessionIdleTimeout:   time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		SessionCacheTTL:      time.Duration(GetEnvAsInt("SESSION_CACHE_TTL_MINUTES", 60)) * time.Minute,
		CleanupInterval:      time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute,
		StaticDir:            GetEnv("STATIC_DIR", "./static"),
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
