// Package catalog loads the static gift catalog shown before a session opens
// and implements the store's search, filters and facets.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/validation"
)

// ErrInvalidCatalog is returned when the catalog file fails schema or domain checks
var ErrInvalidCatalog = errors.New("invalid catalog")

type file struct {
	Version string        `json:"version"`
	Items   []domain.Item `json:"items"`
}

// Loader reads and validates catalog files
type Loader struct {
	validator  validation.SchemaValidator
	schemaPath string
}

// NewLoader creates a loader validating against the schema at schemaPath
func NewLoader(validator validation.SchemaValidator, schemaPath string) *Loader {
	return &Loader{validator: validator, schemaPath: schemaPath}
}

// Load reads the catalog at path. Every item comes back unowned.
func (l *Loader) Load(path string) ([]domain.Item, error) {
	resolved, err := validation.ResolvePath(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFmt, path, err)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFmt, path, err)
	}
	return l.Parse(data, path)
}

// Parse validates raw catalog bytes; source names the file in errors
func (l *Loader) Parse(data []byte, source string) ([]domain.Item, error) {
	if err := l.validator.ValidateBytes(data, l.schemaPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, source, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFmt, source, err)
	}

	seen := make(map[string]struct{}, len(f.Items))
	for i := range f.Items {
		it := &f.Items[i]
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: "+ErrMsgDuplicateItemFmt, ErrInvalidCatalog, it.ID)
		}
		seen[it.ID] = struct{}{}

		if !it.Price.IsPositive() {
			return nil, fmt.Errorf("%w: "+ErrMsgItemPriceFmt, ErrInvalidCatalog, it.ID)
		}
		it.Title = strings.TrimSpace(it.Title)
		it.Price = domain.Round2(it.Price)
		it.Owner = domain.Unowned
		it.Origin = ""
	}

	logger.Info(LogMsgCatalogLoaded, "source", source, "version", f.Version, "items", len(f.Items))
	return f.Items, nil
}
