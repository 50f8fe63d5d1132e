package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB  int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking policy. Hours are "HH:MM"; the close boundary is exclusive.
	BusinessOpen  string `mapstructure:"BUSINESS_OPEN"`
	BusinessClose string `mapstructure:"BUSINESS_CLOSE"`
	// Weekdays on which new bookings are refused (comma separated names).
	ClosedWeekdays string `mapstructure:"CLOSED_WEEKDAYS"`
	// Weekdays on which reschedules are refused. Kept separate from
	// CLOSED_WEEKDAYS: the two rules differ and may do so intentionally.
	RescheduleBlockedDays string `mapstructure:"RESCHEDULE_BLOCKED_DAYS"`

	// Background job tuning.
	StaleBookingTTLHours int `mapstructure:"STALE_BOOKING_TTL_HOURS"`
	OverdueCancelHours   int `mapstructure:"OVERDUE_CANCEL_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "fixmate")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("BUSINESS_OPEN", "09:00")
	viper.SetDefault("BUSINESS_CLOSE", "17:00")
	viper.SetDefault("CLOSED_WEEKDAYS", "Sunday")
	viper.SetDefault("RESCHEDULE_BLOCKED_DAYS", "Saturday,Sunday")
	viper.SetDefault("STALE_BOOKING_TTL_HOURS", 24)
	viper.SetDefault("OVERDUE_CANCEL_HOURS", 3)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SplitDays parses a comma separated weekday list from config.
func SplitDays(csv string) []string {
	var days []string
	for _, d := range strings.Split(csv, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return days
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
