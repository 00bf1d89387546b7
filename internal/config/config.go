package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port      string
	Storage   string
	DBConn    string
	LogLevel  string
	JWTSecret string

	HealthHighThreshold float64
	HealthLowThreshold  float64
	ProjectionMonths    int
	ProjectionMaxMonths int
	PayDayFirst         int
	PayDaySecond        int

	AlertLookaheadDays     int
	AlertUseRecordLeadTime bool

	ReminderCron  string
	ReminderEmail string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Storage:       getEnv("STORAGE", "postgres"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		ReminderCron:  getEnv("REMINDER_CRON", "0 8 * * *"),
		ReminderEmail: getEnv("REMINDER_EMAIL", ""),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "finance-tracker@localhost"),
	}

	var err error
	if cfg.HealthHighThreshold, err = getFloat("HEALTH_HIGH_THRESHOLD", 10000); err != nil {
		return nil, err
	}
	if cfg.HealthLowThreshold, err = getFloat("HEALTH_LOW_THRESHOLD", 0); err != nil {
		return nil, err
	}
	if cfg.ProjectionMonths, err = getInt("PROJECTION_MONTHS", 6); err != nil {
		return nil, err
	}
	if cfg.ProjectionMaxMonths, err = getInt("PROJECTION_MAX_MONTHS", 120); err != nil {
		return nil, err
	}
	if cfg.AlertLookaheadDays, err = getInt("ALERT_LOOKAHEAD_DAYS", 15); err != nil {
		return nil, err
	}
	if cfg.AlertUseRecordLeadTime, err = getBool("ALERT_USE_RECORD_LEAD_TIME", true); err != nil {
		return nil, err
	}
	if cfg.PayDayFirst, cfg.PayDaySecond, err = parsePayDays(getEnv("SEMI_MONTHLY_PAY_DAYS", "10,25")); err != nil {
		return nil, err
	}

	if cfg.Storage != "postgres" && cfg.Storage != "memory" {
		return nil, fmt.Errorf("STORAGE must be postgres or memory, got %q", cfg.Storage)
	}
	if cfg.Storage == "postgres" && cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HealthHighThreshold < cfg.HealthLowThreshold {
		return nil, fmt.Errorf("HEALTH_HIGH_THRESHOLD must not be below HEALTH_LOW_THRESHOLD")
	}
	if cfg.ProjectionMonths < 1 {
		return nil, fmt.Errorf("PROJECTION_MONTHS must be positive")
	}
	if cfg.ProjectionMaxMonths < cfg.ProjectionMonths {
		return nil, fmt.Errorf("PROJECTION_MAX_MONTHS must not be below PROJECTION_MONTHS")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}

// parsePayDays reads "first,second" days of month.
func parsePayDays(raw string) (int, int, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("SEMI_MONTHLY_PAY_DAYS must have two days, got %q", raw)
	}
	var days [2]int
	for i, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || d < 1 || d > 31 {
			return 0, 0, fmt.Errorf("SEMI_MONTHLY_PAY_DAYS has invalid day %q", p)
		}
		days[i] = d
	}
	if days[0] == days[1] {
		return 0, 0, fmt.Errorf("SEMI_MONTHLY_PAY_DAYS must name two different days, got %q", raw)
	}
	return days[0], days[1], nil
}
