package config

import "time"

type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`
}

// UsersAPIConfig points at the remote user-management API.
type UsersAPIConfig struct {
	// e.g. "https://abc123.execute-api.eu-west-1.amazonaws.com/dev"
	BaseURL string `env:"BASE_URL,required"`
	// Zero means no client-side timeout.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

type SessionConfig struct {
	Secret     string        `env:"SECRET,required"`
	CookieName string        `env:"COOKIE_NAME" envDefault:"userdesk_session"`
	Secure     bool          `env:"COOKIE_SECURE" envDefault:"false"`
	TTL        time.Duration `env:"TTL" envDefault:"24h"`
}

type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// RateLimitConfig caps form submissions per session. Limit <= 0 disables it.
type RateLimitConfig struct {
	Limit  int           `env:"LIMIT" envDefault:"30"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
}

type KafkaConfig struct {
	Enabled     bool     `env:"ENABLED" envDefault:"false"`
	Brokers     []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	ClientID    string   `env:"CLIENT_ID" envDefault:"userdesk"`
	TopicPrefix string   `env:"TOPIC_PREFIX"`
}

// ObservabilityConfig Observability / telemetry configuration
type ObservabilityConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"userdesk"`
	ServiceEnv  string `env:"SERVICE_ENV" envDefault:"Development"`
	// e.g. "otel-collector:4317"
	OtelEndpoint string `env:"ENDPOINT"`
}

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"Development"`
	// Message catalogue for the console: "fr" or "en".
	Locale   string `env:"LOCALE" envDefault:"fr"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP          HTTPConfig          `envPrefix:"HTTP_"`
	UsersAPI      UsersAPIConfig      `envPrefix:"USERS_API_"`
	Session       SessionConfig       `envPrefix:"SESSION_"`
	Redis         RedisConfig         `envPrefix:"REDIS_"`
	RateLimit     RateLimitConfig     `envPrefix:"RATE_LIMIT_"`
	Kafka         KafkaConfig         `envPrefix:"KAFKA_"`
	Observability ObservabilityConfig `envPrefix:"OTEL_"`
}
