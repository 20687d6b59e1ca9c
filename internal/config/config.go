package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	Mirror MirrorConfig
	Events EventsConfig
	QR     QRConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type MirrorConfig struct {
	SQLitePath string
}

type EventsConfig struct {
	HeartbeatInterval time.Duration
	BufferSize        int
}

type QRConfig struct {
	Enabled bool
	Secret  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // SSE streams must not be cut off by a write deadline
			IdleTimeout:  60 * time.Second,
		},
		Mirror: MirrorConfig{
			SQLitePath: getEnv("SQLITE_PATH", "storefront.db"),
		},
		Events: EventsConfig{
			HeartbeatInterval: time.Duration(getEnvInt("HEARTBEAT_SECONDS", 30)) * time.Second,
			BufferSize:        getEnvInt("SSE_BUFFER_SIZE", 16),
		},
		QR: QRConfig{
			Enabled: getEnvBool("QR_ENABLED", true),
			Secret:  getEnv("QR_SECRET_KEY", "storefront-dev-secret"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
