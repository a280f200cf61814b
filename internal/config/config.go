package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	Version     string `envconfig:"VERSION" default:"dev"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogDir    string `envconfig:"LOG_DIR" default:"logs"`

	// LedgerDriver selects the remote ledger: "postgres" or "memory"
	LedgerDriver string `envconfig:"LEDGER_DRIVER" default:"postgres"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DBUser       string `envconfig:"DB_USER" default:"postgres"`
	DBPassword   string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBHost       string `envconfig:"DB_HOST" default:"localhost"`
	DBPort       string `envconfig:"DB_PORT" default:"5432"`
	DBName       string `envconfig:"DB_NAME" default:"giftmarket"`
	DBMaxConns   int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	AutoMigrate  bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	TelegramBotToken string        `envconfig:"TELEGRAM_BOT_TOKEN"`
	AuthMaxAge       time.Duration `envconfig:"AUTH_MAX_AGE" default:"24h"`
	CORSOrigins      []string      `envconfig:"CORS_ORIGINS" default:"*"`

	CatalogPath       string        `envconfig:"CATALOG_PATH" default:"configs/catalog.json"`
	CatalogSchemaPath string        `envconfig:"CATALOG_SCHEMA_PATH" default:"configs/schemas/catalog.schema.json"`
	SessionTTL        time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SessionCapacity   int           `envconfig:"SESSION_CAPACITY" default:"10000"`
	SettingsCacheTTL  time.Duration `envconfig:"SETTINGS_CACHE_TTL" default:"5m"`
	WorkerCount       int           `envconfig:"WORKER_COUNT" default:"4"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
	RateLimit      int      `envconfig:"RATE_LIMIT" default:"1000"`

	// Event publisher retries. An empty dead-letter path means LOG_DIR/event_deadletter.jsonl.
	EventMaxRetries     int           `envconfig:"EVENT_MAX_RETRIES" default:"5"`
	EventRetryDelay     time.Duration `envconfig:"EVENT_RETRY_DELAY" default:"2s"`
	EventDeadLetterPath string        `envconfig:"EVENT_DEADLETTER_PATH"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsDevelopment reports whether the service runs in the dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// GetDBConnString returns the PostgreSQL connection string.
// DATABASE_URL wins over the individual DB_* settings.
func (c *Config) GetDBConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
