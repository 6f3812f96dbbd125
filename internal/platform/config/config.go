package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvironmentDev is the only environment where issued OTPs are logged in full.
const EnvironmentDev = "dev"

// Server captures process level configuration.
type Server struct {
	Addr           string
	Environment    string
	LogLevel       string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	CORSOrigins    []string
	MessagesFile   string
	TracingEnabled bool

	Database     DatabaseConfig
	Redis        RedisConfig
	Notification NotificationConfig
	OTP          OTPConfig
}

// DatabaseConfig selects the PostgreSQL stores when URL is set.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrateOnStart  bool
}

// RedisConfig selects the Redis OTP store when URL is set.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NotificationConfig picks how OTP and registration events leave the service.
type NotificationConfig struct {
	Driver       string // log, kafka or amqp
	KafkaBrokers string
	KafkaTopic   string
	AMQPURL      string
	AMQPExchange string
}

// OTPConfig tunes one-time password issuance.
type OTPConfig struct {
	TTL         time.Duration
	Length      int
	MaxAttempts int
}

const (
	NotifierLog   = "log"
	NotifierKafka = "kafka"
	NotifierAMQP  = "amqp"
)

// SetDefaults registers every key with its default so AutomaticEnv can
// resolve it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("environment", EnvironmentDev)
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("max_body_bytes", 64*1024)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("messages_file", "")
	v.SetDefault("tracing_enabled", false)

	v.SetDefault("database_url", "")
	v.SetDefault("database_max_open_conns", 25)
	v.SetDefault("database_max_idle_conns", 5)
	v.SetDefault("database_conn_max_lifetime", 5*time.Minute)
	v.SetDefault("migrate_on_start", false)

	v.SetDefault("redis_url", "")
	v.SetDefault("redis_pool_size", 10)
	v.SetDefault("redis_min_idle_conns", 2)
	v.SetDefault("redis_dial_timeout", 5*time.Second)
	v.SetDefault("redis_read_timeout", 3*time.Second)
	v.SetDefault("redis_write_timeout", 3*time.Second)

	v.SetDefault("notifier", NotifierLog)
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "registration.events")
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "registration.events")

	v.SetDefault("otp_ttl", 10*time.Minute)
	v.SetDefault("otp_length", 6)
	v.SetDefault("otp_max_attempts", 5)
}

// LoadDotEnv loads variables from the given .env files when they exist.
// Missing files are not an error; production sets variables directly.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// FromViper builds a Server config. v must have had SetDefaults applied and
// AutomaticEnv enabled so environment variables override defaults.
func FromViper(v *viper.Viper) (Server, error) {
	cfg := Server{
		Addr:           v.GetString("addr"),
		Environment:    v.GetString("environment"),
		LogLevel:       v.GetString("log_level"),
		RequestTimeout: v.GetDuration("request_timeout"),
		MaxBodyBytes:   v.GetInt64("max_body_bytes"),
		CORSOrigins:    splitList(v.GetString("cors_allowed_origins")),
		MessagesFile:   v.GetString("messages_file"),
		TracingEnabled: v.GetBool("tracing_enabled"),
		Database: DatabaseConfig{
			URL:             v.GetString("database_url"),
			MaxOpenConns:    v.GetInt("database_max_open_conns"),
			MaxIdleConns:    v.GetInt("database_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database_conn_max_lifetime"),
			MigrateOnStart:  v.GetBool("migrate_on_start"),
		},
		Redis: RedisConfig{
			URL:          v.GetString("redis_url"),
			PoolSize:     v.GetInt("redis_pool_size"),
			MinIdleConns: v.GetInt("redis_min_idle_conns"),
			DialTimeout:  v.GetDuration("redis_dial_timeout"),
			ReadTimeout:  v.GetDuration("redis_read_timeout"),
			WriteTimeout: v.GetDuration("redis_write_timeout"),
		},
		Notification: NotificationConfig{
			Driver:       strings.ToLower(v.GetString("notifier")),
			KafkaBrokers: v.GetString("kafka_brokers"),
			KafkaTopic:   v.GetString("kafka_topic"),
			AMQPURL:      v.GetString("amqp_url"),
			AMQPExchange: v.GetString("amqp_exchange"),
		},
		OTP: OTPConfig{
			TTL:         v.GetDuration("otp_ttl"),
			Length:      v.GetInt("otp_length"),
			MaxAttempts: v.GetInt("otp_max_attempts"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate rejects combinations that cannot start.
func (c Server) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.OTP.TTL <= 0 {
		return fmt.Errorf("otp_ttl must be positive")
	}
	if c.OTP.Length < 4 || c.OTP.Length > 10 {
		return fmt.Errorf("otp_length must be between 4 and 10, got %d", c.OTP.Length)
	}
	if c.OTP.MaxAttempts < 1 {
		return fmt.Errorf("otp_max_attempts must be at least 1, got %d", c.OTP.MaxAttempts)
	}
	switch c.Notification.Driver {
	case NotifierLog:
	case NotifierKafka:
		if c.Notification.KafkaBrokers == "" {
			return fmt.Errorf("kafka_brokers is required when notifier is kafka")
		}
	case NotifierAMQP:
		if c.Notification.AMQPURL == "" {
			return fmt.Errorf("amqp_url is required when notifier is amqp")
		}
	default:
		return fmt.Errorf("unknown notifier %q", c.Notification.Driver)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
