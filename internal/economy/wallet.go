package economy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/session"
)

// Deposit credits the fixed test amount. The mirror is updated before the
// store is called and keeps the new balance even if the store refuses.
func (s *service) Deposit(ctx context.Context, sess *session.Session) (*Result, error) {
	release, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	defer release()

	log := logger.FromContext(ctx)
	log.Info(LogMsgDepositCalled, "identity", sess.Identity)

	// no cancellation once the first remote call is issued
	rctx := context.WithoutCancel(ctx)
	mir := sess.Mirror
	amount := domain.TestDepositAmount
	newBalance := domain.Round2(mir.Balance().Add(amount))

	mir.SetBalance(newBalance)

	var recorded domain.Transaction
	out := newSaga(OpDeposit, sess.Identity,
		step{
			name: StepSetBalance,
			run: func(ctx context.Context) error {
				_, err := s.store.SetBalance(ctx, sess.Identity, newBalance)
				return err
			},
			abort: true,
		},
		step{
			name: StepCreateTransaction,
			run: func(ctx context.Context) error {
				var err error
				recorded, err = s.writeHistory(ctx, mir, sess.Identity, domain.NewTransaction{
					Type:   domain.TxDeposit,
					Title:  DepositTitle,
					Amount: amount,
				})
				return err
			},
		},
	).execute(rctx)

	if out.err != nil {
		s.reportPartial(rctx, OpDeposit, sess.Identity, out.failed)
		return nil, remoteErr(out.abortedAt, out.err)
	}

	res := &Result{Status: StatusCompleted, User: mir.User(), Transaction: &recorded}
	if out.partial() {
		res.Status = StatusPartiallyFailed
		res.FailedSteps = out.failed
		s.reportPartial(rctx, OpDeposit, sess.Identity, out.failed)
	}

	s.publish(rctx, event.NewWalletDepositedEvent(sess.Identity, amount.String(), newBalance.String(), recorded.LocalOnly))
	log.Info(LogMsgDepositCompleted, "identity", sess.Identity, "balance", newBalance.String(), "status", res.Status)
	return res, nil
}

// QuoteCardDeposit converts a RUB card payment into TON at the fixed rate
func (s *service) QuoteCardDeposit(amountRub decimal.Decimal) (decimal.Decimal, error) {
	if err := validateCardDepositRub(amountRub); err != nil {
		return decimal.Zero, err
	}
	return domain.QuoteTon(amountRub), nil
}

// CreateCardDepositRequest files a request for support to credit a card
// payment. The ledger is not touched until support approves it.
func (s *service) CreateCardDepositRequest(ctx context.Context, sess *session.Session, amountTon, amountRub decimal.Decimal) (*Result, error) {
	if err := validateCardDeposit(amountTon, amountRub); err != nil {
		return nil, err
	}
	release, err := s.begin(sess)
	if err != nil {
		return nil, err
	}
	defer release()

	rctx := context.WithoutCancel(ctx)
	rec, err := s.store.CreateDepositRequest(rctx, sess.Identity, domain.Round2(amountTon), domain.Round2(amountRub))
	if err != nil {
		return nil, remoteErr(OpCardDeposit, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, remoteErr(OpCardDeposit, err)
	}

	req := rec.ToDepositRequest()
	s.publish(rctx, event.NewDepositRequestCreatedEvent(req))
	logger.FromContext(ctx).Info(LogMsgCardDepositCreated, "identity", sess.Identity, "request_id", req.ID, "amount_ton", req.AmountTon.String())

	return &Result{Status: StatusCompleted, User: sess.Mirror.User(), DepositRequest: &req}, nil
}

// ValidateWithdrawal checks a withdrawal form. Withdrawals are processed by
// support, so nothing is written.
func (s *service) ValidateWithdrawal(sess *session.Session, amount decimal.Decimal, cardNumber string) error {
	if err := requireIdentity(sess); err != nil {
		return err
	}
	return validateWithdrawal(amount, sess.Mirror.Balance(), cardNumber)
}
