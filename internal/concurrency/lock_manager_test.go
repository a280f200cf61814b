package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SameKeySameLock(t *testing.T) {
	lm := NewLockManager[int64]()

	assert.Same(t, lm.GetLock(1), lm.GetLock(1))
	assert.NotSame(t, lm.GetLock(1), lm.GetLock(2))
}

func TestLockManager_SerialisesKey(t *testing.T) {
	lm := NewLockManager[int64]()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu := lm.GetLock(42)
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
