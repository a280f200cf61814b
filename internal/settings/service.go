// Package settings serves operator-managed settings with a short-lived cache.
package settings

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

const (
	cacheSize = 64

	LogMsgSettingLookupFailed = "Setting lookup failed, using fallback"
)

// Service reads settings through the cache
type Service struct {
	repo  repository.Settings
	cache *expirable.LRU[string, string]
	group singleflight.Group
}

// NewService creates a settings service caching values for ttl
func NewService(repo repository.Settings, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: expirable.NewLRU[string, string](cacheSize, nil, ttl),
	}
}

// Get returns the value for key, or fallback when it is unset or cannot be read.
// Only successful reads are cached.
func (s *Service) Get(ctx context.Context, key, fallback string) string {
	if v, ok := s.cache.Get(key); ok {
		return orDefault(v, fallback)
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		value, err := s.repo.GetSetting(ctx, key)
		if err != nil {
			return "", err
		}
		s.cache.Add(key, value)
		return value, nil
	})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSettingLookupFailed, "key", key, "error", err)
		return fallback
	}
	return orDefault(v.(string), fallback)
}

// SupportUsername is the Telegram account users contact for withdrawals and card deposits
func (s *Service) SupportUsername(ctx context.Context) string {
	return s.Get(ctx, domain.SettingSupportUsername, domain.DefaultSupportUsername)
}

// Invalidate drops every cached value
func (s *Service) Invalidate() {
	s.cache.Purge()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
