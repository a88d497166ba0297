package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string // YAML key: "database"
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	Services struct {
		BookingServicePort int
		TripServicePort    int
		GroceryServicePort int
	}
	JWT struct {
		SecretKey string `yaml:"secret_key"`
	}
	Checkout struct {
		StepPercent    int // progress added per tick
		TickIntervalMS int
		ConfirmDelayMS int // pause between 100% and the confirmation view
	}
	Chat struct {
		ReplyDelayMS int // scripted driver reply delay
	}
}

// LoadFromFile loads config from a YAML file to a Config struct, applies defaults, and validates required fields.
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := parseYAML(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets safe defaults for some fields.
func applyDefaults(cfg *Config) {
	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}

	// RabbitMQ
	if cfg.RabbitMQ.Host == "" {
		cfg.RabbitMQ.Host = "localhost"
	}
	if cfg.RabbitMQ.Port == 0 {
		cfg.RabbitMQ.Port = 5672
	}

	// Services
	if cfg.Services.BookingServicePort == 0 {
		cfg.Services.BookingServicePort = 3000
	}
	if cfg.Services.TripServicePort == 0 {
		cfg.Services.TripServicePort = 3001
	}
	if cfg.Services.GroceryServicePort == 0 {
		cfg.Services.GroceryServicePort = 3002
	}

	if cfg.JWT.SecretKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			// fallback: time-based bytes
			key = []byte(fmt.Sprintf("%d", time.Now().UnixNano()))
		}
		cfg.JWT.SecretKey = base64.StdEncoding.EncodeToString(key)
	}

	// Checkout simulator cadence: 0 -> 100 in steps of 10 every 200ms,
	// then a 1s pause before the confirmation view.
	if cfg.Checkout.StepPercent == 0 {
		cfg.Checkout.StepPercent = 10
	}
	if cfg.Checkout.TickIntervalMS == 0 {
		cfg.Checkout.TickIntervalMS = 200
	}
	if cfg.Checkout.ConfirmDelayMS == 0 {
		cfg.Checkout.ConfirmDelayMS = 1000
	}

	// Chat scripted reply delay.
	if cfg.Chat.ReplyDelayMS == 0 {
		cfg.Chat.ReplyDelayMS = 2000
	}
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	// DB
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		problems = append(problems, "database.port must be in 1..65535")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Database.Password == "" {
		problems = append(problems, "database.password is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "database.name is required")
	}

	// RabbitMQ
	if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
		problems = append(problems, "rabbitmq.port must be in 1..65535")
	}
	if c.RabbitMQ.User == "" {
		problems = append(problems, "rabbitmq.user is required")
	}
	if c.RabbitMQ.Password == "" {
		problems = append(problems, "rabbitmq.password is required")
	}

	// Services
	if c.Services.BookingServicePort <= 0 || c.Services.BookingServicePort > 65535 {
		problems = append(problems, "services.booking_service must be in 1..65535")
	}
	if c.Services.TripServicePort <= 0 || c.Services.TripServicePort > 65535 {
		problems = append(problems, "services.trip_service must be in 1..65535")
	}
	if c.Services.GroceryServicePort <= 0 || c.Services.GroceryServicePort > 65535 {
		problems = append(problems, "services.grocery_service must be in 1..65535")
	}

	// Checkout
	if c.Checkout.StepPercent < 1 || c.Checkout.StepPercent > 100 {
		problems = append(problems, "checkout.step_percent must be in 1..100")
	}
	if c.Checkout.TickIntervalMS < 1 {
		problems = append(problems, "checkout.tick_interval_ms must be positive")
	}
	if c.Checkout.ConfirmDelayMS < 0 {
		problems = append(problems, "checkout.confirm_delay_ms cannot be negative")
	}

	// Chat
	if c.Chat.ReplyDelayMS < 1 {
		problems = append(problems, "chat.reply_delay_ms must be positive")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// CheckoutTickInterval returns the progress tick cadence as a duration.
func (c *Config) CheckoutTickInterval() time.Duration {
	return time.Duration(c.Checkout.TickIntervalMS) * time.Millisecond
}

// CheckoutConfirmDelay returns the post-completion pause as a duration.
func (c *Config) CheckoutConfirmDelay() time.Duration {
	return time.Duration(c.Checkout.ConfirmDelayMS) * time.Millisecond
}

// ChatReplyDelay returns the scripted reply delay as a duration.
func (c *Config) ChatReplyDelay() time.Duration {
	return time.Duration(c.Chat.ReplyDelayMS) * time.Millisecond
}
