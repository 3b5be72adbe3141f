package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	TimeSync   TimeSyncConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds admin session token configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// TimeSyncConfig controls the network-time resolver.
type TimeSyncConfig struct {
	Sources      []string
	Interval     time.Duration
	FetchTimeout time.Duration
}

// AttendanceConfig holds gate policy knobs.
type AttendanceConfig struct {
	// EnforceNetworkCheck gates check-ins on the center's authorized
	// network identifier. Off by default: the operator disabled IP
	// enforcement in production, the code path stays intact.
	EnforceNetworkCheck bool
	DefaultRadiusMeters float64
	StoreRetryAttempts  int
}

func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	syncInterval, err := time.ParseDuration(getEnv("TIME_SYNC_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_SYNC_INTERVAL: %w", err)
	}
	fetchTimeout, err := time.ParseDuration(getEnv("TIME_SYNC_FETCH_TIMEOUT", "4s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_SYNC_FETCH_TIMEOUT: %w", err)
	}

	sources := getEnvSlice("TIME_SYNC_SOURCES")
	if len(sources) == 0 {
		sources = []string{
			"https://timeapi.io/api/Time/current/zone?timeZone=Europe/Istanbul",
			"https://worldtimeapi.org/api/timezone/Europe/Istanbul",
			"https://worldtimeapi.org/api/timezone/Asia/Damascus",
		}
	}

	config.TimeSync = TimeSyncConfig{
		Sources:      sources,
		Interval:     syncInterval,
		FetchTimeout: fetchTimeout,
	}

	radius, err := strconv.ParseFloat(getEnv("ATTENDANCE_DEFAULT_RADIUS_M", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DEFAULT_RADIUS_M: %w", err)
	}
	retryAttempts, err := strconv.Atoi(getEnv("ATTENDANCE_STORE_RETRY_ATTEMPTS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_STORE_RETRY_ATTEMPTS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		EnforceNetworkCheck: getEnv("ATTENDANCE_ENFORCE_NETWORK_CHECK", "false") == "true",
		DefaultRadiusMeters: radius,
		StoreRetryAttempts:  retryAttempts,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.DefaultRadiusMeters <= 0 {
		return fmt.Errorf("ATTENDANCE_DEFAULT_RADIUS_M must be positive")
	}
	if c.Attendance.StoreRetryAttempts < 1 {
		return fmt.Errorf("ATTENDANCE_STORE_RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
