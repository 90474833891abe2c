package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/stylematch/waitlist/internal/api/metrics"
	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/ports"
	"github.com/stylematch/waitlist/pkg/logger"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 256
	notifyTimeout  = 10 * time.Second
)

// Dispatcher delivers submission notifications on a fixed set of workers so
// the request path never waits on the notifier.
type Dispatcher struct {
	jobs     chan domain.Submission
	workers  int
	notifier ports.Notifier
	timeout  time.Duration
	pace     *rate.Limiter // nil sends as fast as workers allow
	log      zerolog.Logger
	wg       sync.WaitGroup
}

type DispatcherOption func(*Dispatcher)

// WithSendRate caps deliveries across all workers at perSecond. Zero or less
// leaves sending unthrottled.
func WithSendRate(perSecond float64) DispatcherOption {
	return func(d *Dispatcher) {
		if perSecond > 0 {
			d.pace = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewDispatcher creates a Dispatcher with numWorkers workers sharing a queue
// of bufferSize jobs. Non-positive values fall back to the defaults.
func NewDispatcher(numWorkers, bufferSize int, notifier ports.Notifier, log zerolog.Logger, opts ...DispatcherOption) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	d := &Dispatcher{
		jobs:     make(chan domain.Submission, bufferSize),
		workers:  numWorkers,
		notifier: notifier,
		timeout:  notifyTimeout,
		log:      log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands sub to a worker. It never blocks: when the queue is full the
// notification is dropped and logged.
func (d *Dispatcher) Enqueue(sub domain.Submission) {
	select {
	case d.jobs <- sub:
		metrics.NotifyQueueDepth.Set(float64(len(d.jobs)))
	default:
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("kind", string(sub.Kind())).
			Str("id", sub.SubmissionID()).
			Msg("notification queue full, dropping notification")
	}
}

// Len reports the number of queued notifications.
func (d *Dispatcher) Len() int {
	return len(d.jobs)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case sub := <-d.jobs:
			metrics.NotifyQueueDepth.Set(float64(len(d.jobs)))
			d.deliver(ctx, id, sub)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, sub domain.Submission) {
	if d.pace != nil {
		// Only fails once ctx is cancelled; the job is abandoned on shutdown.
		if err := d.pace.Wait(ctx); err != nil {
			return
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, sub); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("kind", string(sub.Kind())).
			Str("id", sub.SubmissionID()).
			Str("email", logger.RedactEmail(sub.ContactEmail())).
			Int("worker_id", id).
			Msg("notification failed")
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
}

var _ ports.NotificationQueue = (*Dispatcher)(nil)
