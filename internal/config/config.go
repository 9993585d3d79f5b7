package config

import (
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string `env:"PORT,default=5000"`
	DatabaseURL string `env:"DATABASE_URL,required=true"`

	RedisAddr     string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	// SweepInterval must stay shorter than or comparable to StaleAfter,
	// otherwise departure detection latency grows unbounded.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL,default=15s"`
	StaleAfter    time.Duration `env:"STALE_AFTER,default=10s"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT,default=5s"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX,default=100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,default=1s"`

	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN,default=*"`
	LogLevel          string `env:"LOG_LEVEL,default=info"`
	AppEnv            string `env:"APP_ENV,default=development"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
