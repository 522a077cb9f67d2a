package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendRemote   = "remote"
)

// Identity providers selectable through AUTH_PROVIDER.
const (
	AuthProviderStatic  = "static"
	AuthProviderCasdoor = "casdoor"
	AuthProviderRemote  = "remote"
)

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Store selection.
	StoreBackend  string
	DatabaseURL   string
	RedisURL      string
	RemoteBaseURL string
	// SimLatency delays each in-memory store operation.
	SimLatency time.Duration

	// Auth.
	AuthProvider string
	Allowlist    string
	JWTIssuer    string
	JWTKey       string
	JWTTTL       time.Duration
	Casdoor      CasdoorConfig

	// Check-in entries after this "HH:MM" cutoff are late.
	EntryCutoff string

	// Events.
	KafkaBrokers []string
	KafkaTopic   string
}

// LoadConfig reads configuration from the environment, with .env as a
// development convenience.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StoreBackend:  getEnv("STORE_BACKEND", BackendMemory),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RemoteBaseURL: os.Getenv("REMOTE_BASE_URL"),
		SimLatency:    getDuration("SIM_LATENCY_MS", 150*time.Millisecond),
		AuthProvider:  getEnv("AUTH_PROVIDER", AuthProviderStatic),
		Allowlist:     os.Getenv("AUTH_ALLOWLIST"),
		JWTIssuer:     getEnv("JWT_ISSUER", "attendance-service"),
		JWTKey:        os.Getenv("JWT_KEY"),
		JWTTTL:        getDuration("JWT_TTL_MINUTES", 8*time.Hour),
		EntryCutoff:   getEnv("ENTRY_CUTOFF", "08:00"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "attendance.events"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: os.Getenv("CASDOOR_ORGANIZATION"),
			Application:  os.Getenv("CASDOOR_APPLICATION"),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendRemote:
		if c.RemoteBaseURL == "" {
			return fmt.Errorf("REMOTE_BASE_URL is required for the remote backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	switch c.AuthProvider {
	case AuthProviderStatic, AuthProviderCasdoor, AuthProviderRemote:
	default:
		return fmt.Errorf("unknown auth provider %q", c.AuthProvider)
	}

	if c.AuthProvider == AuthProviderRemote && c.StoreBackend != BackendRemote {
		return fmt.Errorf("the remote auth provider requires the remote store backend")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	switch {
	case strings.HasSuffix(key, "_MS"):
		return time.Duration(n) * time.Millisecond
	case strings.HasSuffix(key, "_MINUTES"):
		return time.Duration(n) * time.Minute
	default:
		return time.Duration(n) * time.Second
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
