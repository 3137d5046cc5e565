package config

import (
	"fmt"
	"os"
)

// Config is built once at process start and handed to the collaborators
// that need credentials. Business logic never reads the environment.
type Config struct {
	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string

	RedisURL string
	TempDir  string
}

var cfg *Config

func Load() *Config {
	if cfg != nil {
		return cfg
	}
	currency := os.Getenv("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "INR"
	}
	fromName := os.Getenv("MAIL_FROM_NAME")
	if fromName == "" {
		fromName = "Hostel Admin"
	}
	cfg = &Config{
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		Currency:          currency,
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		MailFrom:          os.Getenv("MAIL_FROM"),
		MailFromName:      fromName,
		RedisURL:          os.Getenv("REDIS_HOST"),
		TempDir:           os.Getenv("TEMP_DIR"),
	}
	return cfg
}

// NewConfig replaces the loaded configuration, for tests.
func NewConfig(c *Config) *Config {
	cfg = c
	return cfg
}

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"
