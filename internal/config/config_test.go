package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultBehavior(t *testing.T) {
	// Clean environment for testing defaults
	clearTestEnvVars()
	defer clearTestEnvVars()

	createTestEnvFile(t)
	defer removeTestEnvFile()

	config := LoadConfig()
	require.NotNil(t, config)

	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, "3306", config.Database.Port)
	assert.Equal(t, "famchat", config.Database.Username)
	assert.Equal(t, "famchat123", config.Database.Password)
	assert.Equal(t, "famchat", config.Database.DatabaseName)
	assert.Equal(t, 25, config.Database.MaxOpenConns)
	assert.Equal(t, 5, config.Database.MaxIdleConns)

	assert.Equal(t, "3000", config.Server.Port)
	assert.Equal(t, "7005", config.Server.AdminPort)
	assert.Equal(t, "development", config.Server.Environment)
	assert.True(t, config.IsDevelopment())

	assert.Equal(t, 256, config.Gateway.SendBuffer)
	assert.Equal(t, int64(64*1024), config.Gateway.MaxMessageBytes)
	assert.Equal(t, 30*time.Second, config.Gateway.PingInterval)
	assert.Equal(t, 60*time.Second, config.Gateway.PongWait)
	assert.True(t, config.Gateway.EnforceMembership)
	assert.Empty(t, config.Gateway.AllowedOrigins)

	assert.False(t, config.Redis.Enabled)
	assert.Equal(t, 90*time.Second, config.Redis.PresenceTTL)
	assert.False(t, config.Kafka.Enabled)
	assert.Equal(t, "famchat.events", config.Kafka.Topic)

	assert.Equal(t, 2, config.Events.Workers)
	assert.Equal(t, 1000, config.Events.ChannelBufferSize)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_WithEnvironmentOverrides(t *testing.T) {
	testEnvVars := map[string]string{
		"MYSQL_HOST":                 "test-db-host",
		"MYSQL_PORT":                 "3307",
		"MYSQL_USERNAME":             "test-user",
		"SERVER_PORT":                "9000",
		"JWT_SECRET":                 "s3cret",
		"GATEWAY_SEND_BUFFER":        "8",
		"GATEWAY_PING_INTERVAL":      "5s",
		"GATEWAY_ENFORCE_MEMBERSHIP": "false",
		"GATEWAY_ALLOWED_ORIGINS":    "https://a.example, ,https://b.example",
		"REDIS_ENABLED":              "true",
		"REDIS_ADDR":                 "redis:6380",
		"KAFKA_ENABLED":              "true",
		"KAFKA_BROKERS":              "k1:9092,k2:9092",
		"LOG_LEVEL":                  "debug",
	}

	for key, value := range testEnvVars {
		os.Setenv(key, value)
	}

	createTestEnvFile(t)
	defer removeTestEnvFile()

	defer func() {
		for key := range testEnvVars {
			os.Unsetenv(key)
		}
		clearTestEnvVars()
	}()

	config := LoadConfig()

	assert.Equal(t, "test-db-host", config.Database.Host)
	assert.Equal(t, "3307", config.Database.Port)
	assert.Equal(t, "test-user", config.Database.Username)
	assert.Equal(t, "9000", config.Server.Port)
	assert.Equal(t, "s3cret", config.Auth.JWTSecret)
	assert.Equal(t, 8, config.Gateway.SendBuffer)
	assert.Equal(t, 5*time.Second, config.Gateway.PingInterval)
	assert.False(t, config.Gateway.EnforceMembership)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.Gateway.AllowedOrigins)
	assert.True(t, config.Redis.Enabled)
	assert.Equal(t, "redis:6380", config.Redis.Addr)
	assert.True(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestDSN_Generation(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Host:         "test-host",
			Port:         "3307",
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	dsn := config.DSN()
	expected := "testuser:testpass@tcp(test-host:3307)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, expected, dsn)
}

func TestDSN_WithEmptyHostPort(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	dsn := config.DSN()
	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, expected, dsn)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *Config) { c.Kafka.Enabled = true },
			wantErr: "KAFKA_BROKERS",
		},
		{
			name:    "zero send buffer",
			mutate:  func(c *Config) { c.Gateway.SendBuffer = 0 },
			wantErr: "GATEWAY_SEND_BUFFER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Auth:    AuthConfig{JWTSecret: "x"},
				Gateway: GatewayConfig{SendBuffer: 1},
			}
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnv_HelperFunction(t *testing.T) {
	os.Setenv("TEST_KEY", "test_value")
	defer os.Unsetenv("TEST_KEY")

	result := getEnv("TEST_KEY", "default_value")
	assert.Equal(t, "test_value", result)

	result = getEnv("NON_EXISTENT_KEY", "default_value")
	assert.Equal(t, "default_value", result)

	os.Setenv("EMPTY_KEY", "")
	defer os.Unsetenv("EMPTY_KEY")

	result = getEnv("EMPTY_KEY", "default_value")
	assert.Equal(t, "default_value", result)
}

func TestGetEnvAsInt_HelperFunction(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")

	result := getEnvAsInt("TEST_INT", 10)
	assert.Equal(t, 42, result)

	os.Setenv("INVALID_INT", "not-a-number")
	defer os.Unsetenv("INVALID_INT")

	result = getEnvAsInt("INVALID_INT", 10)
	assert.Equal(t, 10, result)

	result = getEnvAsInt("NON_EXISTENT_INT", 100)
	assert.Equal(t, 100, result)
}

func TestGetEnvAsDuration_HelperFunction(t *testing.T) {
	os.Setenv("TEST_DURATION", "250ms")
	defer os.Unsetenv("TEST_DURATION")

	assert.Equal(t, 250*time.Millisecond, getEnvAsDuration("TEST_DURATION", time.Second))

	os.Setenv("BAD_DURATION", "soon")
	defer os.Unsetenv("BAD_DURATION")

	assert.Equal(t, time.Second, getEnvAsDuration("BAD_DURATION", time.Second))
}

// Test helper functions
func createTestEnvFile(t *testing.T) {
	content := `# Test .env file
MYSQL_HOST=localhost
`
	err := os.WriteFile(".env", []byte(content), 0644)
	require.NoError(t, err)
}

func removeTestEnvFile() {
	os.Remove(".env")
}

func clearTestEnvVars() {
	envKeys := []string{
		"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USERNAME", "MYSQL_PASSWORD", "MYSQL_DATABASE",
		"MYSQL_MAX_OPEN_CONNS", "MYSQL_MAX_IDLE_CONNS",
		"SERVER_HOST", "SERVER_PORT", "ADMIN_PORT", "APP_ENV",
		"JWT_SECRET", "JWT_ISSUER",
		"GATEWAY_SEND_BUFFER", "GATEWAY_MAX_MESSAGE_BYTES", "GATEWAY_PING_INTERVAL", "GATEWAY_PONG_WAIT",
		"GATEWAY_WRITE_WAIT", "GATEWAY_INBOUND_RATE", "GATEWAY_INBOUND_BURST",
		"GATEWAY_ENFORCE_MEMBERSHIP", "GATEWAY_ALLOWED_ORIGINS",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "PRESENCE_TTL", "REDIS_ENABLED",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_ENABLED",
		"EVENTS_WORKERS", "EVENTS_BUFFER",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	}

	for _, key := range envKeys {
		os.Unsetenv(key)
	}
}
