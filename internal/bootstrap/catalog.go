package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/GiftMarket_Go/internal/catalog"
	"github.com/osse101/GiftMarket_Go/internal/config"
	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/validation"
)

// LoadCatalog reads and schema-checks the static catalog
func LoadCatalog(cfg *config.Config) ([]domain.Item, error) {
	loader := catalog.NewLoader(validation.NewSchemaValidator(), cfg.CatalogSchemaPath)

	items, err := loader.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	slog.Info(LogMsgCatalogReady, "path", cfg.CatalogPath, "items", len(items))
	return items, nil
}
