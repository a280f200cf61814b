package economy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/mirror"
	"github.com/osse101/GiftMarket_Go/internal/repository"
	"github.com/osse101/GiftMarket_Go/internal/session"
	"github.com/osse101/GiftMarket_Go/internal/worker"
)

// Status tells the caller whether every remote step landed
type Status string

const (
	StatusCompleted       Status = "completed"
	StatusPartiallyFailed Status = "partially_failed"
)

// Result is returned by operations that mutate the mirror or the store
type Result struct {
	Status      Status   `json:"status"`
	FailedSteps []string `json:"failed_steps,omitempty"`
	NextView    string   `json:"next_view,omitempty"`

	User           domain.User            `json:"user"`
	Item           *domain.Item           `json:"item,omitempty"`
	Transaction    *domain.Transaction    `json:"transaction,omitempty"`
	Listing        *domain.Listing        `json:"listing,omitempty"`
	DepositRequest *domain.DepositRequest `json:"deposit_request,omitempty"`
}

// Partial reports a PartiallyFailed result
func (r *Result) Partial() bool {
	return r != nil && r.Status == StatusPartiallyFailed
}

// Err returns domain.ErrPartiallyFailed naming the failed steps, or nil
func (r *Result) Err() error {
	if !r.Partial() {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrPartiallyFailed, r.FailedSteps)
}

// ItemDraft is the create-listing form
type ItemDraft struct {
	Title       string          `json:"title" validate:"required,max=128"`
	Description string          `json:"description" validate:"max=2000"`
	Image       string          `json:"image" validate:"required"`
	Collection  string          `json:"collection,omitempty"`
	Model       string          `json:"model,omitempty"`
	Backdrop    string          `json:"backdrop,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// Service defines the interface for wallet and marketplace operations.
// Every operation runs against the caller's session and is serialised per session.
type Service interface {
	Deposit(ctx context.Context, sess *session.Session) (*Result, error)
	Purchase(ctx context.Context, sess *session.Session, itemID string) (*Result, error)
	Sell(ctx context.Context, sess *session.Session, itemID string, price decimal.Decimal) (*Result, error)
	CreateCardDepositRequest(ctx context.Context, sess *session.Session, amountTon, amountRub decimal.Decimal) (*Result, error)
	QuoteCardDeposit(amountRub decimal.Decimal) (decimal.Decimal, error)
	ValidateWithdrawal(sess *session.Session, amount decimal.Decimal, cardNumber string) error
	PublishItem(ctx context.Context, sess *session.Session, draft ItemDraft) (*Result, error)
	ListListings(ctx context.Context, sess *session.Session) ([]domain.Listing, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	store     repository.Ledger
	pool      *worker.Pool
	publisher event.Publisher
	now       func() time.Time
	newID     func() string
	inflight  sync.WaitGroup
}

// NewService creates a new economy service. pool runs compensations; when nil
// they run inline. publisher may be nil.
func NewService(store repository.Ledger, pool *worker.Pool, publisher event.Publisher) Service {
	return &service{
		store:     store,
		pool:      pool,
		publisher: publisher,
		now:       time.Now,
		newID:     newItemID,
	}
}

// Shutdown waits for in-flight operations. Remote steps are never cancelled,
// so this only bounds how long the caller waits.
func (s *service) Shutdown(ctx context.Context) error {
	logger.Info(LogMsgEconomyShuttingDown)

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf(ErrMsgShutdownTimedOut, ctx.Err())
	}
}

// begin validates the session, takes its lock and tracks the operation.
// The returned func releases both.
func (s *service) begin(sess *session.Session) (func(), error) {
	if err := requireIdentity(sess); err != nil {
		return nil, err
	}
	s.inflight.Add(1)
	sess.Lock()
	return func() {
		sess.Unlock()
		s.inflight.Done()
	}, nil
}

func requireIdentity(sess *session.Session) error {
	if sess == nil {
		return domain.ErrUnknownIdentity
	}
	if sess.Anonymous() {
		return fmt.Errorf(ErrMsgIdentityFmt, domain.ErrUnknownIdentity, sess.Identity)
	}
	return nil
}

// remoteErr wraps store failures as ErrRemoteUnavailable. Domain rejections
// raised by store constraints pass through unchanged.
func remoteErr(stepName string, err error) error {
	for _, known := range []error{domain.ErrInvalidPrice, domain.ErrInvalidAmount, domain.ErrNotOwner} {
		if errors.Is(err, known) {
			return fmt.Errorf(ErrMsgRemoteStepFailedFmt, stepName, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrRemoteUnavailable, stepName, err)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, evt)
}

func (s *service) reportPartial(ctx context.Context, operation string, identity int64, failed []string) {
	logger.FromContext(ctx).Warn(LogMsgSagaPartiallyFailed, "operation", operation, "identity", identity, "failed_steps", failed)
	s.publish(ctx, event.NewSagaPartiallyFailedEvent(operation, identity, failed))
}

// writeHistory stores a history row and merges the stored record into the
// mirror. When the store refuses, a local-only entry takes its place so the
// user still sees it in this session.
func (s *service) writeHistory(ctx context.Context, mir *mirror.Mirror, identity int64, tx domain.NewTransaction) (domain.Transaction, error) {
	rec, err := s.store.CreateTransaction(ctx, identity, tx)
	if err == nil {
		if verr := rec.Validate(); verr != nil {
			err = verr
		} else {
			stored := rec.ToTransaction()
			mir.ApplyRemoteTransaction(stored)
			return stored, nil
		}
	}

	local := domain.LocalTransaction(tx, s.now())
	mir.AddLocalTransaction(local)
	return local, err
}

// compensate runs each compensation on the worker pool, or inline when the
// pool is missing or stopped
func (s *service) compensate(ctx context.Context, comps []compensation, onDone func(ctx context.Context, err error)) {
	log := logger.FromContext(ctx)
	for _, c := range comps {
		job := worker.JobFunc(func(jobCtx context.Context) error {
			err := c.fn(jobCtx)
			onDone(jobCtx, err)
			return err
		})

		if s.pool != nil {
			if err := s.pool.Enqueue(job); err == nil {
				log.Info(LogMsgCompensationQueued, "step", c.step)
				continue
			}
		}
		log.Warn(LogMsgCompensationInline, "step", c.step)
		_ = job.Process(ctx)
	}
}
