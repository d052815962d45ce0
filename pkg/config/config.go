package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
)

type Config struct {
	App       AppConfig
	Session   SessionConfig
	Redis     RedisConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"DAYPASS_APP_ENV" required:"true"`
	Port            string        `envconfig:"DAYPASS_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"DAYPASS_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"DAYPASS_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"DAYPASS_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SessionConfig struct {
	Store         string        `envconfig:"DAYPASS_SESSION_STORE" default:"memory"`
	TTL           time.Duration `envconfig:"DAYPASS_SESSION_TTL" default:"12h"`
	SweepInterval time.Duration `envconfig:"DAYPASS_SESSION_SWEEP_INTERVAL" default:"5m"`
	TokenSecret   string        `envconfig:"DAYPASS_SESSION_TOKEN_SECRET" required:"true"`
	TokenIssuer   string        `envconfig:"DAYPASS_SESSION_TOKEN_ISSUER" default:"daypass"`
	TokenTTL      time.Duration `envconfig:"DAYPASS_SESSION_TOKEN_TTL" default:"168h"`
}

// StoreKind returns the parsed session store kind, defaulting to memory.
func (s SessionConfig) StoreKind() enums.SessionStoreKind {
	kind, err := enums.ParseSessionStoreKind(strings.ToLower(strings.TrimSpace(s.Store)))
	if err != nil {
		return enums.SessionStoreMemory
	}
	return kind
}

type RedisConfig struct {
	URL          string        `envconfig:"DAYPASS_REDIS_URL"`
	Address      string        `envconfig:"DAYPASS_REDIS_ADDR"`
	Password     string        `envconfig:"DAYPASS_REDIS_PASSWORD"`
	DB           int           `envconfig:"DAYPASS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DAYPASS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DAYPASS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DAYPASS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DAYPASS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DAYPASS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DAYPASS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type RateLimitConfig struct {
	CartWindow time.Duration `envconfig:"DAYPASS_RATE_LIMIT_CART_WINDOW" default:"1m"`
	CartLimit  int           `envconfig:"DAYPASS_RATE_LIMIT_CART_LIMIT" default:"120"`
}

func (c *Config) validate() error {
	if _, err := enums.ParseSessionStoreKind(strings.ToLower(strings.TrimSpace(c.Session.Store))); err != nil {
		return fmt.Errorf("%s: %w", EnvSessionStore, err)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	if c.Session.TokenTTL < c.Session.TTL {
		return fmt.Errorf("%s must be at least %s", EnvSessionTokenTTL, EnvSessionTTL)
	}
	if c.Session.StoreKind() == enums.SessionStoreRedis && !c.Redis.Enabled() {
		return fmt.Errorf("either %s or %s is required when %s=%s", EnvRedisURL, EnvRedisAddr, EnvSessionStore, enums.SessionStoreRedis)
	}
	return nil
}
