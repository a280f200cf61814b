package economy

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// TestService_Shutdown_WaitsForInFlightOperations verifies that Shutdown blocks until a running deposit finishes
func TestService_Shutdown_WaitsForInFlightOperations(t *testing.T) {
	// ARRANGE
	f, store := newMockFixture(t, "0")

	started := make(chan struct{})
	unblock := make(chan struct{})
	store.On("SetBalance", mock.Anything, buyer, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-unblock
		}).
		Return(userRecord("100"), nil)
	store.On("CreateTransaction", mock.Anything, buyer, mock.Anything).
		Return(&domain.TransactionRecord{ID: 1, UserID: buyer, Type: domain.TxDeposit, Title: DepositTitle, Amount: domain.TestDepositAmount}, nil)

	// ACT
	depositDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Deposit(context.Background(), f.sess)
		depositDone <- err
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("deposit did not reach the store in time")
	}

	// a short deadline expires while the deposit is blocked
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.svc.Shutdown(ctx), context.DeadlineExceeded)

	close(unblock)
	require.NoError(t, f.svc.Shutdown(context.Background()))

	// ASSERT
	require.NoError(t, <-depositDone)
	assert.Equal(t, "100", f.sess.Mirror.Balance().String())
}

// TestDeposit_CancelledRequestStillCompletes verifies remote steps ignore request cancellation
func TestDeposit_CancelledRequestStillCompletes(t *testing.T) {
	f, store, _ := newMemFixture(t, "0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.svc.Deposit(ctx, f.sess)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)

	rec, err := store.GetOrCreateUser(context.Background(), buyer, domain.Profile{})
	require.NoError(t, err)
	assert.Equal(t, "100", rec.Balance.String())
}

// TestConcurrentOperations_SerialisedPerSession runs deposits and purchases on one session from many goroutines
func TestConcurrentOperations_SerialisedPerSession(t *testing.T) {
	f, store, _ := newMemFixture(t, "0")
	ctx := context.Background()

	const deposits = 10
	var wg sync.WaitGroup
	for i := 0; i < deposits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Deposit(ctx, f.sess)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, "1000", f.sess.Mirror.Balance().String())
	assert.Len(t, f.sess.Mirror.History(), deposits)

	// both goroutines race for the same item; exactly one wins
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.svc.Purchase(ctx, f.sess, "pepe-1")
			results <- err
		}()
	}
	errs := []error{<-results, <-results}

	var wins, owned int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, domain.ErrAlreadyOwned):
			owned++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, owned)
	assert.Equal(t, "970", f.sess.Mirror.Balance().String())

	rec, err := store.GetOrCreateUser(ctx, buyer, domain.Profile{})
	require.NoError(t, err)
	assert.Equal(t, "970", rec.Balance.String(), "store and mirror agree")
}
