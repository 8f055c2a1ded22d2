package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/delfos/internal/domain/model"
)

func row(line int) model.Row {
	return model.Row{Table: "Skills.txt", Line: line, Record: model.SourceRecord{"Element Name": "Programming"}}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if err := q.Enqueue(ctx, row(1)); err != nil {
		t.Fatalf("expected enqueue to succeed: %v", err)
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.Line != 1 {
		t.Errorf("expected line 1, got %d", got.Line)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_BlocksWhenFull(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx := context.Background()

	if err := q.Enqueue(ctx, row(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := q.Enqueue(cctx, row(2))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- q.Enqueue(ctx, row(3)) }()

	<-q.Dequeue(ctx)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected blocked enqueue to succeed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked enqueue never completed")
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := q.Enqueue(ctx, row(i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := q.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}
	if err := q.Enqueue(ctx, row(4)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	n := 0
	for range q.Dequeue(ctx) {
		n++
	}
	if n != 3 {
		t.Errorf("expected queued rows to drain after close, got %d", n)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(16))
	ctx := context.Background()
	const producers, perProducer = 8, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Enqueue(ctx, row(i)); err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}()
	}

	received := make(chan int)
	go func() {
		n := 0
		for range q.Dequeue(ctx) {
			n++
		}
		received <- n
	}()

	wg.Wait()
	_ = q.Close()

	if n := <-received; n != producers*perProducer {
		t.Errorf("expected %d rows, got %d", producers*perProducer, n)
	}
}
