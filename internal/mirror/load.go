package mirror

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// Load fills the mirror from the store. It never fails: each remote error is
// logged and the affected part keeps its defaults. Counters are recomputed
// from the merged history rather than read from the store.
//
// Pushes merged while Load runs win over its reads: a newer balance or item
// state is kept and pushed history entries are unioned with the loaded ones.
func (m *Mirror) Load(ctx context.Context, store repository.Ledger, profile domain.Profile) Snapshot {
	log := logger.FromContext(ctx)

	m.mu.RLock()
	start := m.gen
	m.mu.RUnlock()

	user := domain.User{
		ID:          m.identity,
		DisplayName: profile.DisplayName(),
		Avatar:      profile.AvatarURL,
		Balance:     decimal.Zero,
		TotalVolume: decimal.Zero,
	}
	if rec, err := store.GetOrCreateUser(ctx, m.identity, profile); err != nil {
		log.Warn(LogMsgLoadUserFailed, "error", err)
	} else if err := rec.Validate(); err != nil {
		log.Warn(LogMsgRecordDropped, "error", err)
	} else {
		user = rec.ToUser()
		if user.DisplayName == "" {
			user.DisplayName = profile.DisplayName()
		}
		if user.Avatar == "" {
			user.Avatar = profile.AvatarURL
		}
	}

	var (
		txRecs   []domain.TransactionRecord
		itemRecs []domain.OwnedItemRecord
		g        errgroup.Group
	)
	g.Go(func() error {
		recs, err := store.ListTransactions(ctx, m.identity)
		if err != nil {
			log.Warn(LogMsgLoadHistoryFailed, "error", err)
			return nil
		}
		txRecs = recs
		return nil
	})
	g.Go(func() error {
		recs, err := store.ListOwnedItems(ctx, m.identity)
		if err != nil {
			log.Warn(LogMsgLoadItemsFailed, "error", err)
			return nil
		}
		itemRecs = recs
		return nil
	})
	_ = g.Wait()

	loaded := make([]domain.Transaction, 0, len(txRecs))
	for _, rec := range txRecs {
		if err := rec.Validate(); err != nil {
			log.Warn(LogMsgRecordDropped, "error", err)
			continue
		}
		loaded = append(loaded, rec.ToTransaction())
	}

	m.mu.Lock()
	if m.balanceAt > start {
		user.Balance = m.user.Balance
	}

	loadedIDs := make(map[int64]struct{}, len(loaded))
	for _, tx := range loaded {
		loadedIDs[tx.ID] = struct{}{}
	}
	// entries merged during the load are newer than the store listing
	history := make([]domain.Transaction, 0, len(m.history)+len(loaded))
	for _, tx := range m.history {
		if _, ok := loadedIDs[tx.ID]; !ok {
			history = append(history, tx)
		}
	}
	history = append(history, loaded...)

	m.history = m.history[:0]
	m.txIDs = make(map[int64]struct{}, len(history))
	for _, tx := range history {
		if _, dup := m.txIDs[tx.ID]; dup {
			continue
		}
		m.txIDs[tx.ID] = struct{}{}
		m.history = append(m.history, tx)
		switch tx.Type {
		case domain.TxBuy:
			user.BoughtCount++
			user.TotalVolume = user.TotalVolume.Add(tx.Amount)
		case domain.TxSell:
			user.SoldCount++
			user.TotalVolume = user.TotalVolume.Add(tx.Amount)
		}
	}
	user.TotalVolume = domain.Round2(user.TotalVolume)
	m.user = user

	// store lists newest first; upserting oldest first leaves the newest on top
	for i := len(itemRecs) - 1; i >= 0; i-- {
		rec := itemRecs[i]
		if err := rec.Validate(); err != nil {
			log.Warn(LogMsgRecordDropped, "error", err)
			continue
		}
		if m.itemAt[rec.ItemID] > start {
			continue
		}
		m.upsertItemLocked(rec.ToItem())
	}
	snap := Snapshot{User: m.user, Items: m.itemsLocked(), History: append([]domain.Transaction(nil), m.history...)}
	m.mu.Unlock()

	log.Info(LogMsgLoaded, "history", len(snap.History), "owned_items", len(itemRecs))
	m.notify(userChange(snap.User))
	return snap
}
