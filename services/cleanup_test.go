package services

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCleanupRunsAtMostOnce(t *testing.T) {
	var releases atomic.Int32
	cleanup := NewCleanup(func() {
		releases.Add(1)
	})

	if cleanup.Consumed() {
		t.Fatal("cleanup consumed before any trigger")
	}

	// cancel, expiry, terminal push and teardown can all race
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cleanup.Run()
		}()
	}
	wg.Wait()

	if got := releases.Load(); got != 1 {
		t.Fatalf("release fired %d times, want exactly 1", got)
	}
	if !cleanup.Consumed() {
		t.Fatal("cleanup should report consumed")
	}
	if cleanup.Run() {
		t.Fatal("Run after consumption must report false")
	}
}

func TestCleanupNilRelease(t *testing.T) {
	cleanup := NewCleanup(nil)
	if !cleanup.Run() {
		t.Fatal("first Run should win even with a nil release")
	}
}
