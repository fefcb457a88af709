package services

import (
	"sync"
	"testing"
	"time"
)

func TestApplicationLocksSerializeSameKey(t *testing.T) {
	locks := newApplicationLocks()

	const workers = 8
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(1)
			defer locks.Unlock(1)
			// A data race here fails the test under the race detector; a
			// lost update fails the count below.
			value := counter
			time.Sleep(time.Millisecond)
			counter = value + 1
		}()
	}

	wg.Wait()
	if counter != workers {
		t.Fatalf("expected %d increments, got %d", workers, counter)
	}
}

func TestApplicationLocksIndependentKeys(t *testing.T) {
	locks := newApplicationLocks()

	locks.Lock(1)

	done := make(chan struct{})
	go func() {
		locks.Lock(2)
		locks.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different application blocked")
	}

	locks.Unlock(1)
}

func TestApplicationLocksDropIdleEntries(t *testing.T) {
	locks := newApplicationLocks()

	locks.Lock(5)
	locks.Unlock(5)

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Fatalf("expected idle entries to be dropped, have %d", len(locks.locks))
	}
}
