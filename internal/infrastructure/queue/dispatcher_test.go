package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/core/domain"
)

type stubNotifier struct {
	mu       sync.Mutex
	notified []string
	deadline bool
	err      error
	done     chan struct{}
}

func newStubNotifier(err error) *stubNotifier {
	return &stubNotifier{err: err, done: make(chan struct{}, 16)}
}

func (n *stubNotifier) Notify(ctx context.Context, sub domain.Submission) error {
	n.mu.Lock()
	n.notified = append(n.notified, sub.SubmissionID())
	_, n.deadline = ctx.Deadline()
	n.mu.Unlock()
	n.done <- struct{}{}
	return n.err
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestDispatcher_DeliversNotifications(t *testing.T) {
	n := newStubNotifier(nil)
	d := NewDispatcher(2, 8, n, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(&domain.Customer{ID: "c1", Email: "a@b.co"})
	d.Enqueue(&domain.Merchant{ID: "m1", Email: "m@b.co"})
	waitFor(t, n.done)
	waitFor(t, n.done)

	cancel()
	d.Wait()

	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notified) != 2 {
		t.Fatalf("expected 2 notifications, got %v", n.notified)
	}
	if !n.deadline {
		t.Fatal("notify context should carry a timeout")
	}
}

func TestDispatcher_FailureIsSwallowed(t *testing.T) {
	n := newStubNotifier(errors.New("smtp down"))
	d := NewDispatcher(1, 4, n, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(&domain.Customer{ID: "c1", Email: "a@b.co"})
	waitFor(t, n.done)

	d.Enqueue(&domain.Customer{ID: "c2", Email: "c@d.co"})
	waitFor(t, n.done)
}

func TestDispatcher_FullQueueDrops(t *testing.T) {
	n := newStubNotifier(nil)
	d := NewDispatcher(1, 1, n, zerolog.Nop())

	d.Enqueue(&domain.Customer{ID: "c1"})
	d.Enqueue(&domain.Customer{ID: "c2"})

	if d.Len() != 1 {
		t.Fatalf("expected 1 queued job, got %d", d.Len())
	}
}

func TestDispatcher_Defaults(t *testing.T) {
	d := NewDispatcher(0, 0, newStubNotifier(nil), zerolog.Nop())
	if d.workers != defaultWorkers || cap(d.jobs) != defaultBuffer {
		t.Fatalf("unexpected defaults: workers=%d buffer=%d", d.workers, cap(d.jobs))
	}
}

func TestDispatcher_SendRatePacesDeliveries(t *testing.T) {
	n := newStubNotifier(nil)
	d := NewDispatcher(3, 8, n, zerolog.Nop(), WithSendRate(10))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := range 3 {
		d.Enqueue(&domain.Customer{ID: string(rune('a' + i))})
	}
	start := time.Now()
	d.Start(ctx)
	for range 3 {
		waitFor(t, n.done)
	}

	// one immediate send, then 100ms between the next two
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Fatalf("3 sends at 10/s finished in %v", elapsed)
	}
}

func TestDispatcher_ZeroSendRateIsUnthrottled(t *testing.T) {
	d := NewDispatcher(1, 1, newStubNotifier(nil), zerolog.Nop(), WithSendRate(0))
	if d.pace != nil {
		t.Fatal("zero rate should leave sending unthrottled")
	}
}
