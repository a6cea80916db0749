package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	ServerHost string
	ServerPort int

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DB            *DBConfig

	JWTSecret          string
	JWTExpirationHours int64

	RedisURL string
	CacheTTL time.Duration

	CORSAllowedOrigins []string
	AuthRatePerMinute  int
	AuthRateBurst      int
	InitialAdminEmail  string

	LogLevel  string
	LogFormat string
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + strconv.Itoa(c.ServerPort)
}

// Load reads configuration from environment variables. Call godotenv.Load
// first to pick up a .env file.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	jwtExpHours, err := strconv.ParseInt(getEnv("JWT_EXPIRATION_HOURS", "24"), 10, 64)
	if err != nil || jwtExpHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q", os.Getenv("JWT_EXPIRATION_HOURS"))
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}

	ratePerMinute, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT_PER_MINUTE", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT_PER_MINUTE: %w", err)
	}

	rateBurst, err := strconv.Atoi(getEnv("AUTH_RATE_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}

	cfg := &Config{
		ServerHost:         getEnv("SERVER_HOST", ""),
		ServerPort:         port,
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDatabase:      strings.TrimSpace(os.Getenv("MONGO_DATABASE")),
		JWTSecret:          os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: jwtExpHours,
		RedisURL:           os.Getenv("REDIS_URL"),
		CacheTTL:           time.Duration(cacheTTL) * time.Second,
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AuthRatePerMinute:  ratePerMinute,
		AuthRateBurst:      rateBurst,
		InitialAdminEmail:  os.Getenv("INITIAL_ADMIN_EMAIL"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY not set in environment")
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGO_URI not set in environment")
		}
		if cfg.MongoDatabase == "" {
			name, err := mongoDatabaseFromURI(cfg.MongoURI)
			if err != nil {
				return nil, err
			}
			cfg.MongoDatabase = name
		}
	case DriverPostgres:
		dbCfg, err := LoadDBConfig()
		if err != nil {
			return nil, err
		}
		cfg.DB = dbCfg
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want mongo, postgres or memory)", cfg.StoreDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func parseCSVEnv(key string, fallback []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
