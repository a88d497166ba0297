package config

import (
	"strings"
	"testing"
)

const sampleYAML = `
database:
  host: db.internal
  port: 5433
  user: zorp
  password: "s3cret"
  database: zorp

rabbitmq:
  host: mq.internal
  port: 5672
  user: zorp
  password: 'mqsecret'

services:
  booking_service: 4000
  trip_service: 4001
  grocery_service: 4002

jwt:
  secret_key: "super-secret"

checkout:
  step_percent: 20
  tick_interval_ms: 50
  confirm_delay_ms: 100

chat:
  reply_delay_ms: 500
`

func TestParseYAML(t *testing.T) {
	var cfg Config
	if err := parseYAML(strings.NewReader(sampleYAML), &cfg); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Database.Password != "s3cret" {
		t.Fatalf("quotes must be stripped, got %q", cfg.Database.Password)
	}
	if cfg.RabbitMQ.Password != "mqsecret" {
		t.Fatalf("single quotes must be stripped, got %q", cfg.RabbitMQ.Password)
	}
	if cfg.Services.BookingServicePort != 4000 || cfg.Services.TripServicePort != 4001 || cfg.Services.GroceryServicePort != 4002 {
		t.Fatalf("unexpected service ports: %+v", cfg.Services)
	}
	if cfg.JWT.SecretKey != "super-secret" {
		t.Fatalf("unexpected jwt secret: %q", cfg.JWT.SecretKey)
	}
	if cfg.Checkout.StepPercent != 20 || cfg.Checkout.TickIntervalMS != 50 || cfg.Checkout.ConfirmDelayMS != 100 {
		t.Fatalf("unexpected checkout config: %+v", cfg.Checkout)
	}
	if cfg.Chat.ReplyDelayMS != 500 {
		t.Fatalf("unexpected chat config: %+v", cfg.Chat)
	}
}

func TestParseYAMLRejectsUnknownKeys(t *testing.T) {
	bad := "database:\n  flavor: strawberry\n"
	var cfg Config
	if err := parseYAML(strings.NewReader(bad), &cfg); err == nil {
		t.Fatalf("expected error for unknown key")
	}

	bad = "spaceship:\n  port: 1\n"
	if err := parseYAML(strings.NewReader(bad), &cfg); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestParseYAMLRejectsDuplicateSections(t *testing.T) {
	bad := "database:\n  host: a\ndatabase:\n  host: b\n"
	var cfg Config
	if err := parseYAML(strings.NewReader(bad), &cfg); err == nil {
		t.Fatalf("expected error for duplicate section")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Fatalf("unexpected db defaults: %+v", cfg.Database)
	}
	if cfg.Services.BookingServicePort != 3000 || cfg.Services.TripServicePort != 3001 || cfg.Services.GroceryServicePort != 3002 {
		t.Fatalf("unexpected service defaults: %+v", cfg.Services)
	}
	if cfg.JWT.SecretKey == "" {
		t.Fatalf("expected generated jwt secret")
	}
	if cfg.Checkout.StepPercent != 10 || cfg.Checkout.TickIntervalMS != 200 || cfg.Checkout.ConfirmDelayMS != 1000 {
		t.Fatalf("unexpected checkout defaults: %+v", cfg.Checkout)
	}
	if cfg.Chat.ReplyDelayMS != 2000 {
		t.Fatalf("unexpected chat defaults: %+v", cfg.Chat)
	}
}

func TestValidate(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	// defaults alone lack required credentials
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected validation failure without credentials")
	}

	cfg.Database.User = "zorp"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "zorp"
	cfg.RabbitMQ.User = "zorp"
	cfg.RabbitMQ.Password = "pw"
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cfg.Checkout.StepPercent = 0
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected validation failure for zero step")
	}
}
