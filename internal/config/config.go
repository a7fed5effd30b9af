package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDSN         = "host=localhost user=postgres password=postgres dbname=naishad port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:3000"
)

type Config struct {
	HTTPPort       string
	DatabaseDriver string // postgres | sqlite
	DatabaseDSN    string
	JWTSecret      string
	TokenTTLHours  int
	CORSOrigins    string

	SiteURL  string
	SiteName string

	MediaPath      string // uploaded images are written here
	MediaURLPrefix string

	RabbitMQURL      string // empty disables lead notifications
	RabbitMQExchange string
}

// Load reads .env (if any) and the environment. Misconfiguration is fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] could not read .env: %v", err)
	}

	cfg, err := LoadFrom(os.Getenv)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres DSN in production.")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your own domain in production.")
	}
	if cfg.RabbitMQURL == "" {
		log.Println("[INFO] RABBITMQ_URL not set, lead notifications are disabled.")
	}

	return cfg
}

// LoadFrom builds a Config from an arbitrary lookup function.
func LoadFrom(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		HTTPPort:         get("HTTP_PORT", "8080"),
		DatabaseDriver:   strings.ToLower(get("DATABASE_DRIVER", "postgres")),
		DatabaseDSN:      get("DATABASE_DSN", defaultDSN),
		JWTSecret:        get("JWT_SECRET", ""),
		CORSOrigins:      get("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		SiteURL:          strings.TrimRight(get("SITE_URL", "https://realestate.com"), "/"),
		SiteName:         get("SITE_NAME", "RealEstate Mumbai"),
		MediaPath:        get("MEDIA_PATH", "./media"),
		MediaURLPrefix:   "/" + strings.Trim(get("MEDIA_URL_PREFIX", "/media"), "/"),
		RabbitMQURL:      get("RABBITMQ_URL", ""),
		RabbitMQExchange: get("RABBITMQ_EXCHANGE", "estate.leads"),
	}

	ttl, err := strconv.Atoi(get("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer")
	}
	cfg.TokenTTLHours = ttl

	switch cfg.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDriver == "sqlite" && cfg.DatabaseDSN == defaultDSN {
		cfg.DatabaseDSN = "naishad.db"
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set, it is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	return cfg, nil
}

// AllowedOrigins returns the CORS origin list with whitespace removed.
func (c *Config) AllowedOrigins() string {
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}
