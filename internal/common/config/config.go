package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Scheduler     SchedulerConfig    `mapstructure:"scheduler"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name           string `mapstructure:"name"`
	Version        string `mapstructure:"version"`
	Environment    string `mapstructure:"environment"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SchedulerConfig drives the periodic reminder scan.
type SchedulerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// NotificationConfig holds the outbound channel settings. The subsystem is
// gated on these: when the selected channel's credentials are incomplete the
// daemon still runs its scans, but every dispatch is a logged no-op.
type NotificationConfig struct {
	Channel     string `mapstructure:"channel"`      // "whatsapp" or "sms"
	CountryCode string `mapstructure:"country_code"` // trunk-prefix replacement, e.g. "20"

	Twilio struct {
		AccountSID string `mapstructure:"account_sid"`
		AuthToken  string `mapstructure:"auth_token"`
		From       string `mapstructure:"from"` // sending address, digits with country code
	} `mapstructure:"twilio"`

	SNS struct {
		Region   string `mapstructure:"region"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sns"`
}

// ChannelConfigured reports whether the selected channel has the complete
// credential set (account identifier, auth secret, sending address).
func (n NotificationConfig) ChannelConfigured() bool {
	switch n.Channel {
	case "whatsapp":
		return n.Twilio.AccountSID != "" && n.Twilio.AuthToken != "" && n.Twilio.From != ""
	case "sms":
		return n.SNS.Region != ""
	}
	return false
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
