package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Timeclock TimeclockConfig
	Payroll   PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// TimeclockConfig holds shift tracking policy values.
// BreakMaxDuration is the longest allowed break; the monitor forces a
// clock-out once a break has run past it.
type TimeclockConfig struct {
	BreakMaxDuration     time.Duration
	BreakMonitorInterval time.Duration
}

// PayrollConfig holds pay computation policy values.
type PayrollConfig struct {
	WeeklyRegularHours float64
	OvertimeMultiplier float64
	DeductionRate      float64
}

func Load() (*Config, error) {
	// Missing .env is fine, env vars may come from the runtime
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "fleetdesk-timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Timeclock configuration
	breakMax, err := time.ParseDuration(getEnv("BREAK_MAX_DURATION", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_MAX_DURATION: %w", err)
	}
	monitorInterval, err := time.ParseDuration(getEnv("BREAK_MONITOR_INTERVAL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_MONITOR_INTERVAL: %w", err)
	}
	config.Timeclock = TimeclockConfig{
		BreakMaxDuration:     breakMax,
		BreakMonitorInterval: monitorInterval,
	}

	// Payroll configuration
	weeklyHours, err := getEnvFloat("PAYROLL_WEEKLY_REGULAR_HOURS", 40)
	if err != nil {
		return nil, err
	}
	overtimeMultiplier, err := getEnvFloat("PAYROLL_OVERTIME_MULTIPLIER", 1.5)
	if err != nil {
		return nil, err
	}
	deductionRate, err := getEnvFloat("PAYROLL_DEDUCTION_RATE", 0.20)
	if err != nil {
		return nil, err
	}
	config.Payroll = PayrollConfig{
		WeeklyRegularHours: weeklyHours,
		OvertimeMultiplier: overtimeMultiplier,
		DeductionRate:      deductionRate,
	}

	// Validate required fields
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
	if c.Timeclock.BreakMaxDuration <= 0 {
		return fmt.Errorf("BREAK_MAX_DURATION must be positive")
	}
	if c.Timeclock.BreakMonitorInterval <= 0 {
		return fmt.Errorf("BREAK_MONITOR_INTERVAL must be positive")
	}
	if c.Payroll.WeeklyRegularHours <= 0 {
		return fmt.Errorf("PAYROLL_WEEKLY_REGULAR_HOURS must be positive")
	}
	if c.Payroll.OvertimeMultiplier < 1 {
		return fmt.Errorf("PAYROLL_OVERTIME_MULTIPLIER must be at least 1")
	}
	if c.Payroll.DeductionRate < 0 || c.Payroll.DeductionRate >= 1 {
		return fmt.Errorf("PAYROLL_DEDUCTION_RATE must be in [0, 1)")
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

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
