package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks cross-field requirements envconfig cannot express
func (c *Config) Validate() error {
	var problems []string

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT out of range: %d", c.Port))
	}

	switch c.LedgerDriver {
	case LedgerDriverPostgres:
		if c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "" || c.DBUser == "") {
			problems = append(problems, "DATABASE_URL or DB_HOST, DB_NAME and DB_USER must be set for the postgres ledger")
		}
	case LedgerDriverMemory:
		if !c.IsDevelopment() {
			problems = append(problems, "LEDGER_DRIVER=memory is only allowed in the dev environment")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown LEDGER_DRIVER %q", c.LedgerDriver))
	}

	if c.TelegramBotToken == "" && !c.IsDevelopment() {
		problems = append(problems, "TELEGRAM_BOT_TOKEN must be set outside the dev environment")
	}

	if c.SessionCapacity <= 0 {
		problems = append(problems, "SESSION_CAPACITY must be positive")
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.RateLimit <= 0 || c.EventMaxRetries < 0 {
		problems = append(problems, "RATE_LIMIT must be positive and EVENT_MAX_RETRIES not negative")
	}
	if c.SessionTTL <= 0 || c.SettingsCacheTTL <= 0 {
		problems = append(problems, "SESSION_TTL and SETTINGS_CACHE_TTL must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
