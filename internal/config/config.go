package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-insecure-secret"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside dev/test")

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"dev"`
	Port int    `env:"PORT" envDefault:"8080"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`

	NewsAPIKey   string        `env:"NEWS_API_KEY"`
	NewsAPIURL   string        `env:"NEWS_API_URL" envDefault:"https://newsapi.org/v2/everything"`
	NewsRSSURL   string        `env:"NEWS_RSS_URL"`
	NewsTimeout  time.Duration `env:"NEWS_TIMEOUT" envDefault:"10s"`
	NewsCacheTTL time.Duration `env:"NEWS_CACHE_TTL" envDefault:"0s"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBMaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"5"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/users.db"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes       int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is
	// believed. Empty means the peer address is the client address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// AuthRateLimit caps signup/login attempts per client IP and window;
	// 0 turns the limiter off.
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"0"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`

	MetricsEnabled  bool    `env:"METRICS_ENABLED" envDefault:"true"`
	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName     string  `env:"OTEL_SERVICE_NAME" envDefault:"news-aggregator"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// a missing .env is normal in containers
	_ = godotenv.Load()

	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, ErrMissingJWTSecret
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "test"
}

// NewsConfigured reports whether any outbound news provider is set up.
func (c Config) NewsConfigured() bool {
	return c.NewsAPIKey != "" || c.NewsRSSURL != ""
}
