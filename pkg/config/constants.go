package config

// EnvPrefix is empty because every field carries its full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv             = "DAYPASS_APP_ENV"
	EnvPort               = "DAYPASS_APP_PORT"
	EnvLogLevel           = "DAYPASS_LOG_LEVEL"
	EnvSessionStore       = "DAYPASS_SESSION_STORE"
	EnvSessionTTL         = "DAYPASS_SESSION_TTL"
	EnvSessionTokenSecret = "DAYPASS_SESSION_TOKEN_SECRET"
	EnvSessionTokenTTL    = "DAYPASS_SESSION_TOKEN_TTL"
	EnvRedisURL           = "DAYPASS_REDIS_URL"
	EnvRedisAddr          = "DAYPASS_REDIS_ADDR"
	EnvCORSOrigins        = "DAYPASS_CORS_ALLOWED_ORIGINS"
	EnvCartRateLimit      = "DAYPASS_RATE_LIMIT_CART_LIMIT"
)
