// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hpq_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arrowlane/cq/hpq"
)

func TestSingleWorkerOrdering(t *testing.T) {
	q := hpq.New[int](func(a, b int) bool { return a > b })
	w := q.NewWorker()
	for _, v := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		w.Push(v)
	}
	want := []int{9, 6, 5, 4, 3, 2, 1, 1}
	for _, expect := range want {
		v, ok := w.TryPop()
		if !ok || v != expect {
			t.Fatalf("TryPop: got (%d, %v), want (%d, true)", v, ok, expect)
		}
	}
	if _, ok := w.TryPop(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestOverflowSpillsToGlobal(t *testing.T) {
	q := hpq.New[int](func(a, b int) bool { return a > b }, hpq.WithLocalThreshold[int](2))
	producer := q.NewWorker()
	for i := range 10 {
		producer.Push(i)
	}
	if producer.Len() > 2 {
		t.Fatalf("local heap len = %d, want <= 2", producer.Len())
	}

	consumer := q.NewWorker()
	total := 0
	for {
		if _, ok := consumer.TryPop(); !ok {
			break
		}
		total++
	}
	if _, ok := producer.TryPop(); ok {
		total++
	}
	if total != 10 {
		t.Fatalf("consumed %d items, want 10", total)
	}
}

// TestStealingUnderLoad has many producers pushing into their own
// worker heaps and many consumers with empty local heaps of their own,
// forced to steal or fall back to the global heap. The total count of
// items consumed must equal the total pushed.
func TestStealingUnderLoad(t *testing.T) {
	q := hpq.New[int](func(a, b int) bool { return a > b })

	const producers = 4
	const perProducer = 500
	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := q.NewWorker()
			for i := range perProducer {
				w.Push(i)
			}
		}()
	}
	wg.Wait()

	const consumers = 4
	var mu sync.Mutex
	total := 0
	var cwg sync.WaitGroup
	for range consumers {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			w := q.NewWorker()
			for {
				ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
				_, err := w.WaitAndPop(ctx)
				cancel()
				if err != nil {
					return
				}
				mu.Lock()
				total++
				mu.Unlock()
			}
		}()
	}
	cwg.Wait()

	if want := producers * perProducer; total != want {
		t.Fatalf("consumed %d items, want %d", total, want)
	}
}

func TestWaitAndPopContextCancel(t *testing.T) {
	q := hpq.New[int](func(a, b int) bool { return a > b })
	w := q.NewWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := w.WaitAndPop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WaitAndPop on empty queue: got %v, want DeadlineExceeded", err)
	}
}

func TestWaitAndPopWakesOnPush(t *testing.T) {
	q := hpq.New[int](func(a, b int) bool { return a > b })
	consumer := q.NewWorker()
	producer := q.NewWorker()

	done := make(chan int, 1)
	go func() {
		v, err := consumer.WaitAndPop(context.Background())
		if err != nil {
			t.Errorf("WaitAndPop: %v", err)
			return
		}
		done <- v
	}()

	time.Sleep(5 * time.Millisecond)
	producer.Push(7)

	select {
	case v := <-done:
		if v != 7 {
			t.Fatalf("got %d, want 7", v)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitAndPop never woke up")
	}
}

func TestStatsCountsStealsAndPushes(t *testing.T) {
	q := hpq.New[int](func(a, b int) bool { return a > b })
	producer := q.NewWorker()
	for i := range 5 {
		producer.Push(i)
	}

	consumer := q.NewWorker()
	for range 5 {
		if _, ok := consumer.TryPop(); !ok {
			t.Fatal("expected an item")
		}
	}

	stats := q.Stats()
	if stats.Pushes != 5 {
		t.Fatalf("Pushes = %d, want 5", stats.Pushes)
	}
	if stats.Pops != 5 {
		t.Fatalf("Pops = %d, want 5", stats.Pops)
	}
	if stats.StealsWon == 0 {
		t.Fatal("expected at least one successful steal: consumer's local heap started empty")
	}
}

func TestCloseWakesWaiters(t *testing.T) {
	q := hpq.New[int](func(a, b int) bool { return a > b })
	w := q.NewWorker()

	errCh := make(chan error, 1)
	go func() {
		_, err := w.WaitAndPop(context.Background())
		errCh <- err
	}()

	time.Sleep(5 * time.Millisecond)
	q.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, hpq.ErrClosed) {
			t.Fatalf("got %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitAndPop never woke up after Close")
	}
}
