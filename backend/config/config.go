package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// AnswerModeUser stores one attributed Answer row per submitted pair.
	AnswerModeUser = "user"
	// AnswerModeAnonymous stores one SubmittedAnswer row per chosen option.
	AnswerModeAnonymous = "anonymous"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	JWTSecret   string
	JWTTTLHours int
	AuthEnabled bool

	ServerPort  string
	CORSOrigins string

	AnswerRecordMode string

	LogFormat string
	LogColors bool
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	ttl, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "72"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("JWT_TTL_HOURS must be a positive integer")
	}

	cfg := &Config{
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "postgres"),
		DBName:           getEnv("DB_NAME", "quizzer"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DBPath:           getEnv("DB_PATH", "quizzer.db"),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		JWTTTLHours:      ttl,
		AuthEnabled:      getBool("AUTH_ENABLED", false),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		AnswerRecordMode: strings.ToLower(getEnv("ANSWER_RECORD_MODE", AnswerModeUser)),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogColors:        getBool("LOG_COLORS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.AnswerRecordMode {
	case AnswerModeUser, AnswerModeAnonymous:
	default:
		return fmt.Errorf("unsupported ANSWER_RECORD_MODE %q", c.AnswerRecordMode)
	}

	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.DBPath
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}
