package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/memstore"
	"github.com/osse101/GiftMarket_Go/internal/mocks"
	"github.com/osse101/GiftMarket_Go/internal/realtime"
)

func TestSupportUsername_ReadsStoreAndCaches(t *testing.T) {
	repo := &mocks.MockSettings{}
	repo.On("GetSetting", mock.Anything, domain.SettingSupportUsername).Return("giftdesk", nil).Once()
	svc := NewService(repo, time.Minute)

	assert.Equal(t, "giftdesk", svc.SupportUsername(context.Background()))
	assert.Equal(t, "giftdesk", svc.SupportUsername(context.Background()))
	repo.AssertExpectations(t)
}

func TestSupportUsername_FallsBack(t *testing.T) {
	tests := []struct {
		name  string
		value string
		err   error
	}{
		{name: "unset", value: ""},
		{name: "store error", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockSettings{}
			repo.On("GetSetting", mock.Anything, domain.SettingSupportUsername).Return(tt.value, tt.err)

			svc := NewService(repo, time.Minute)
			assert.Equal(t, domain.DefaultSupportUsername, svc.SupportUsername(context.Background()))
		})
	}
}

func TestSupportUsername_ErrorsAreNotCached(t *testing.T) {
	repo := &mocks.MockSettings{}
	repo.On("GetSetting", mock.Anything, domain.SettingSupportUsername).Return("", errors.New("timeout")).Once()
	repo.On("GetSetting", mock.Anything, domain.SettingSupportUsername).Return("giftdesk", nil).Once()
	svc := NewService(repo, time.Minute)

	assert.Equal(t, domain.DefaultSupportUsername, svc.SupportUsername(context.Background()))
	assert.Equal(t, "giftdesk", svc.SupportUsername(context.Background()))
}

func TestInvalidate_RereadsStore(t *testing.T) {
	store := memstore.New(realtime.NewHub())
	svc := NewService(store, time.Hour)

	assert.Equal(t, domain.DefaultSupportUsername, svc.SupportUsername(context.Background()))

	store.SetSetting(domain.SettingSupportUsername, "newdesk")
	assert.Equal(t, domain.DefaultSupportUsername, svc.SupportUsername(context.Background()), "cached")

	svc.Invalidate()
	assert.Equal(t, "newdesk", svc.SupportUsername(context.Background()))
}
