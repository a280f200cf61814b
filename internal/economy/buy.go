package economy

import (
	"context"
	"fmt"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/mirror"
	"github.com/osse101/GiftMarket_Go/internal/session"
)

// Purchase buys a catalog item with the session's balance.
//
// The debit, counters and ownership change are applied to the mirror first.
// The three remote steps then run in order and none of them is rolled back
// locally when it fails; the result reports them instead. If the balance was
// debited remotely but the item could not be recorded, a refund is queued.
// A panic during the remote steps reverts balance and boughtCount.
func (s *service) Purchase(ctx context.Context, sess *session.Session, itemID string) (res *Result, err error) {
	release, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	defer release()

	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseCalled, "identity", sess.Identity, "item", itemID)

	mir := sess.Mirror
	item, undo, err := mir.ApplyPurchase(itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgItemFmt, err, itemID)
	}

	defer func() {
		if r := recover(); r != nil {
			mir.RevertPurchase(undo)
			log.Error(LogMsgPurchaseAborted, "identity", sess.Identity, "item", itemID, "panic", fmt.Sprint(r))
			res = nil
			err = fmt.Errorf(ErrMsgPanicFmt, domain.ErrPurchaseAborted, r)
		}
	}()

	rctx := context.WithoutCancel(ctx)
	newBalance := domain.Round2(undo.Balance.Sub(item.Price))
	identity := sess.Identity

	var recorded domain.Transaction
	out := newSaga(OpPurchase, identity,
		step{
			name: StepSetBalance,
			run: func(ctx context.Context) error {
				_, err := s.store.SetBalance(ctx, identity, newBalance)
				return err
			},
			compensate: func(ctx context.Context) error {
				return s.refund(ctx, mir, identity, item)
			},
		},
		step{
			name: StepAddOwnedItem,
			run: func(ctx context.Context) error {
				rec, err := s.store.AddOwnedItem(ctx, identity, domain.OwnedItemFrom(item, domain.OriginPurchase))
				if err != nil {
					return err
				}
				if err := rec.Validate(); err != nil {
					return err
				}
				mir.ApplyRemoteItemAdded(rec.ToItem())
				return nil
			},
			critical: true,
		},
		step{
			name: StepCreateTransaction,
			run: func(ctx context.Context) error {
				var err error
				recorded, err = s.writeHistory(ctx, mir, identity, domain.NewTransaction{
					Type:      domain.TxBuy,
					Title:     item.Title,
					Amount:    item.Price,
					ItemID:    item.ID,
					ItemTitle: item.Title,
				})
				return err
			},
		},
	).execute(rctx)

	res = &Result{Status: StatusCompleted, User: mir.User(), Item: &item, Transaction: &recorded}
	if out.partial() {
		res.Status = StatusPartiallyFailed
		res.FailedSteps = out.failed
		s.reportPartial(rctx, OpPurchase, identity, out.failed)
	} else {
		res.NextView = domain.ViewOwnedItems
	}

	if len(out.compensations) > 0 {
		s.compensate(rctx, out.compensations, func(ctx context.Context, err error) {
			if err != nil {
				logger.FromContext(ctx).Error(LogMsgCompensationFailed, "job", compensationJobName, "identity", identity, "item", item.ID, "error", err)
			} else {
				logger.FromContext(ctx).Info(LogMsgCompensationCompleted, "job", compensationJobName, "identity", identity, "item", item.ID)
			}
			s.publish(ctx, event.NewCompensationCompletedEvent(OpPurchase, identity, item.ID, err == nil))
		})
	}

	s.publish(rctx, event.NewItemPurchasedEvent(identity, item.ID, item.Title, item.Price.String(), newBalance.String(), out.failed))
	log.Info(LogMsgItemPurchased, "identity", identity, "item", item.ID, "balance", newBalance.String(), "status", res.Status)
	return res, nil
}

// refund credits the price back after the item could not be recorded. It reads
// the current remote balance so deposits that landed meanwhile are kept.
func (s *service) refund(ctx context.Context, mir *mirror.Mirror, identity int64, item domain.Item) error {
	rec, err := s.store.GetOrCreateUser(ctx, identity, domain.Profile{})
	if err != nil {
		return fmt.Errorf(ErrMsgRemoteStepFailedFmt, StepSetBalance, err)
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	credited, err := s.store.SetBalance(ctx, identity, domain.Round2(rec.Balance.Add(item.Price)))
	if err != nil {
		return fmt.Errorf(ErrMsgRemoteStepFailedFmt, StepSetBalance, err)
	}
	mir.ApplyRemoteBalance(credited.Balance)
	mir.ApplyRemoteItemRemoved(item.ID)

	if _, err := s.writeHistory(ctx, mir, identity, domain.NewTransaction{
		Type:      domain.TxDeposit,
		Title:     fmt.Sprintf(RefundTitleFmt, item.Title),
		Amount:    item.Price,
		ItemID:    item.ID,
		ItemTitle: item.Title,
	}); err != nil {
		logger.FromContext(ctx).Warn(LogMsgStepFailed, "operation", compensationJobName, "step", StepCreateTransaction, "error", err)
	}
	return nil
}
