package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// SettingsRepository reads operator settings from system_settings
type SettingsRepository struct {
	db DBTX
}

var _ repository.Settings = (*SettingsRepository)(nil)

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting returns the value for key, or "" when unset
func (r *SettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx,
		`SELECT setting_value FROM system_settings WHERE setting_key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", ErrMsgFailedToGetSetting, key, err)
	}
	return value, nil
}

// ListSettings returns every setting
func (r *SettingsRepository) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT setting_key, setting_value FROM system_settings`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSetting, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSetting, err)
		}
		out[key] = value
	}
	return out, rows.Err()
}
