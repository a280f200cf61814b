package economy

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/session"
)

// Sell creates a pending listing for an owned item. Ownership is re-checked
// against the store, not the mirror, so a sale that already happened elsewhere
// is caught. Balance and ownership only move once the listing is approved
// outside this service.
func (s *service) Sell(ctx context.Context, sess *session.Session, itemID string, price decimal.Decimal) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "item", itemID, "price", price.String())

	if err := validateListingPrice(price); err != nil {
		return nil, err
	}
	release, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	defer release()

	item, ok := sess.Mirror.Item(itemID)
	if !ok {
		return nil, fmt.Errorf(ErrMsgItemFmt, domain.ErrItemNotFound, itemID)
	}

	rctx := context.WithoutCancel(ctx)
	owns, err := s.store.OwnsItem(rctx, sess.Identity, itemID)
	if err != nil {
		return nil, remoteErr(OpSell, err)
	}
	if !owns {
		return nil, fmt.Errorf(ErrMsgItemFmt, domain.ErrNotOwner, itemID)
	}

	listing, err := s.createListing(rctx, domain.NewListing{
		SellerID:  sess.Identity,
		ItemID:    item.ID,
		ItemTitle: item.Title,
		ItemImage: item.Image,
		Price:     domain.Round2(price),
	})
	if err != nil {
		return nil, err
	}

	s.publish(rctx, event.NewListingEvent(event.ListingCreated, listing))
	log.Info(LogMsgListingCreated, "identity", sess.Identity, "listing_id", listing.ID, "item", itemID)
	return &Result{Status: StatusCompleted, User: sess.Mirror.User(), Item: &item, Listing: &listing}, nil
}

func (s *service) createListing(ctx context.Context, nl domain.NewListing) (domain.Listing, error) {
	rec, err := s.store.CreateListing(ctx, nl)
	if err != nil {
		return domain.Listing{}, remoteErr(StepCreateListing, err)
	}
	if err := rec.Validate(); err != nil {
		return domain.Listing{}, remoteErr(StepCreateListing, err)
	}
	return rec.ToListing(), nil
}

// PublishItem handles the create-listing form: the new item is shown to its
// owner straight away, a pending listing is filed and a zero-amount sell row
// is written to history.
func (s *service) PublishItem(ctx context.Context, sess *session.Session, draft ItemDraft) (*Result, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	release, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	defer release()

	log := logger.FromContext(ctx)
	rctx := context.WithoutCancel(ctx)
	mir := sess.Mirror
	identity := sess.Identity

	item := domain.Item{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Price:       domain.Round2(draft.Price),
		Image:       draft.Image,
		Owner:       domain.Owner(identity),
		Collection:  draft.Collection,
		Model:       draft.Model,
		Backdrop:    draft.Backdrop,
	}
	mir.AddItem(item)

	var (
		listing  domain.Listing
		recorded domain.Transaction
	)
	out := newSaga(OpPublish, identity,
		step{
			name: StepCreateListing,
			run: func(ctx context.Context) error {
				var err error
				listing, err = s.createListing(ctx, domain.NewListing{
					SellerID:  identity,
					ItemID:    item.ID,
					ItemTitle: item.Title,
					ItemImage: item.Image,
					Price:     item.Price,
				})
				return err
			},
		},
		step{
			name: StepCreateTransaction,
			run: func(ctx context.Context) error {
				var err error
				recorded, err = s.writeHistory(ctx, mir, identity, domain.NewTransaction{
					Type:      domain.TxSell,
					Title:     fmt.Sprintf(ListingTitleFmt, item.Title),
					Amount:    decimal.Zero,
					ItemID:    item.ID,
					ItemTitle: item.Title,
				})
				return err
			},
		},
	).execute(rctx)

	res := &Result{Status: StatusCompleted, User: mir.User(), Item: &item, Transaction: &recorded}
	if listing.ID != 0 {
		res.Listing = &listing
		s.publish(rctx, event.NewListingEvent(event.ItemPublished, listing))
	}
	if out.partial() {
		res.Status = StatusPartiallyFailed
		res.FailedSteps = out.failed
		s.reportPartial(rctx, OpPublish, identity, out.failed)
	}

	log.Info(LogMsgItemPublished, "identity", identity, "item", item.ID, "status", res.Status)
	return res, nil
}

// ListListings returns the caller's listings, newest first
func (s *service) ListListings(ctx context.Context, sess *session.Session) ([]domain.Listing, error) {
	if err := requireIdentity(sess); err != nil {
		return nil, err
	}

	recs, err := s.store.ListListings(ctx, sess.Identity)
	if err != nil {
		return nil, remoteErr(OpListListings, err)
	}

	log := logger.FromContext(ctx)
	listings := make([]domain.Listing, 0, len(recs))
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			log.Warn(LogMsgRecordDropped, "error", err)
			continue
		}
		listings = append(listings, rec.ToListing())
	}
	return listings, nil
}
