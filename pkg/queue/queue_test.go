package queue_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skbags/atelier/pkg/queue"
)

var handled int32

type countJob struct {
	N int32 `json:"n"`
}

func (j countJob) Handle() error {
	atomic.AddInt32(&handled, j.N)
	return nil
}

func TestDispatchAndProcess(t *testing.T) {
	queue.SetDriver(queue.NewMemoryDriver())
	queue.Register("queue_test.countJob", func() queue.Job { return &countJob{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.StartWorkers(ctx, 1)

	if err := queue.Dispatch(countJob{N: 3}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&handled) < 3 {
		select {
		case <-deadline:
			t.Fatalf("job not processed, handled=%d", atomic.LoadInt32(&handled))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestMemoryDriverRoundTrip(t *testing.T) {
	d := queue.NewMemoryDriver()
	if err := d.Push([]byte("payload")); err != nil {
		t.Fatalf("Push: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := d.Pop(ctx)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if string(raw) != "payload" {
		t.Errorf("expected payload, got %q", raw)
	}
}

func TestPopRespectsCancel(t *testing.T) {
	d := queue.NewMemoryDriver()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Pop(ctx); err == nil {
		t.Error("expected error from Pop on cancelled context")
	}
}
