package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	Auth AuthConfig `json:"auth"`

	// Websocket gateway tuning
	Gateway GatewayConfig `json:"gateway"`

	// Presence Configuration (optional)
	Redis RedisConfig `json:"redis"`

	// Event export Configuration (optional)
	Kafka KafkaConfig `json:"kafka"`

	Events EventsConfig `json:"events"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	AdminPort    string `json:"admin_port"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	Issuer    string `json:"issuer"`
}

// GatewayConfig controls per-connection behaviour of the websocket gateway
type GatewayConfig struct {
	SendBuffer        int           `json:"send_buffer"`
	MaxMessageBytes   int64         `json:"max_message_bytes"`
	PingInterval      time.Duration `json:"ping_interval"`
	PongWait          time.Duration `json:"pong_wait"`
	WriteWait         time.Duration `json:"write_wait"`
	InboundRatePerSec int           `json:"inbound_rate_per_sec"`
	InboundBurst      int           `json:"inbound_burst"`
	EnforceMembership bool          `json:"enforce_membership"`
	AllowedOrigins    []string      `json:"allowed_origins"`
}

type RedisConfig struct {
	Addr        string        `json:"addr"`
	Password    string        `json:"-"`
	DB          int           `json:"db"`
	PresenceTTL time.Duration `json:"presence_ttl"`
	Enabled     bool          `json:"enabled"`
}

type KafkaConfig struct {
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
	Enabled bool     `json:"enabled"`
}

// EventsConfig sizes the async export dispatcher
type EventsConfig struct {
	Workers           int `json:"workers"`
	ChannelBufferSize int `json:"channel_buffer_size"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, console
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "3000"),
			AdminPort:    getEnv("ADMIN_PORT", "7005"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USERNAME", "famchat"),
			Password:     getEnv("MYSQL_PASSWORD", "famchat123"),
			DatabaseName: getEnv("MYSQL_DATABASE", "famchat"),
			MaxOpenConns: getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", "famchat"),
		},
		Gateway: GatewayConfig{
			SendBuffer:        getEnvAsInt("GATEWAY_SEND_BUFFER", 256),
			MaxMessageBytes:   int64(getEnvAsInt("GATEWAY_MAX_MESSAGE_BYTES", 64*1024)),
			PingInterval:      getEnvAsDuration("GATEWAY_PING_INTERVAL", 30*time.Second),
			PongWait:          getEnvAsDuration("GATEWAY_PONG_WAIT", 60*time.Second),
			WriteWait:         getEnvAsDuration("GATEWAY_WRITE_WAIT", 10*time.Second),
			InboundRatePerSec: getEnvAsInt("GATEWAY_INBOUND_RATE", 20),
			InboundBurst:      getEnvAsInt("GATEWAY_INBOUND_BURST", 40),
			EnforceMembership: getEnvAsBool("GATEWAY_ENFORCE_MEMBERSHIP", true),
			AllowedOrigins:    getEnvAsList("GATEWAY_ALLOWED_ORIGINS"),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			PresenceTTL: getEnvAsDuration("PRESENCE_TTL", 90*time.Second),
			Enabled:     getEnvAsBool("REDIS_ENABLED", false),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "famchat.events"),
			Enabled: getEnvAsBool("KAFKA_ENABLED", false),
		},
		Events: EventsConfig{
			Workers:           getEnvAsInt("EVENTS_WORKERS", 2),
			ChannelBufferSize: getEnvAsInt("EVENTS_BUFFER", 1000),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
	}
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// IsDevelopment reports whether the service runs with development defaults.
func (cfg *Config) IsDevelopment() bool {
	return cfg.Server.Environment == "development"
}

// Validate rejects configurations the service cannot start with.
func (cfg *Config) Validate() error {
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED=true")
	}
	if cfg.Gateway.SendBuffer <= 0 {
		return fmt.Errorf("GATEWAY_SEND_BUFFER must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
