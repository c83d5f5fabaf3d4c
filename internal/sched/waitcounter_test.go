package sched

import (
	"sync"
	"testing"
	"time"
)

func TestWaitCounterWaitReturnsAfterAllDecrements(t *testing.T) {
	wc := NewWaitCounter(3)
	done := make(chan struct{})
	go func() {
		wc.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before any Decrement")
	case <-time.After(20 * time.Millisecond):
	}

	wc.Decrement(1)
	wc.Decrement(1)

	select {
	case <-done:
		t.Fatal("Wait returned before the counter reached zero")
	case <-time.After(20 * time.Millisecond):
	}

	wc.Decrement(1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the counter reached zero")
	}
}

func TestWaitCounterZeroReturnsImmediately(t *testing.T) {
	wc := NewWaitCounter(0)
	done := make(chan struct{})
	go func() {
		wc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait on a zero-armed counter did not return")
	}
}

func TestWaitCounterUnderflowPanics(t *testing.T) {
	wc := NewWaitCounter(1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on underflow")
		}
	}()
	wc.Decrement(2)
}

func TestWaitCounterConcurrentDecrements(t *testing.T) {
	const n = 1000
	wc := NewWaitCounter(n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wc.Decrement(1)
		}()
	}
	done := make(chan struct{})
	go func() {
		wc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after all concurrent decrements")
	}
	wg.Wait()
}
