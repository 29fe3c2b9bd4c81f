package ranger

import "time"

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	AppTitleEnvVar   = "APP_TITLE"
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "support@cryptodash.local"

	// Backend API defaults
	APIOriginEnvVar = "API_ORIGIN"

	// Origin allowed to call the JSON endpoints cross-origin;
	// defaults to the Vite dev server in development.
	corsOriginEnvVar = "CORS_ORIGIN"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Maintenance mode
	maintModeEnvVar = "MAINTENANCE_MODE"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	shutdownTimeout           = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	redisURLEnvVar          = "REDIS_URL"
	redisPassEnvVar         = "REDIS_PASSWORD"
	sessionMaxAge           = 3600 * 24 * 7

	// Paths served besides the route table
	MetricsPath = "/metrics"
	ResolvePath = "/routes/resolve"

	// The client entrypoint every page loads.
	clientEntry = "main"
)
