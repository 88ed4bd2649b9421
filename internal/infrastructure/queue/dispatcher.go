package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/ports"
	"github.com/oladokun-o/engine/internal/pkg/metrics"
)

const (
	defaultWorkers     = 4
	defaultBuffer      = 256
	defaultSendTimeout = 15 * time.Second
)

// Options sizes the dispatcher. Zero values fall back to defaults.
type Options struct {
	Workers     int
	Buffer      int
	SendTimeout time.Duration
}

// Dispatcher delivers notifications in the background. Notifications are
// sharded by recipient, so mail to one address goes out in enqueue order.
type Dispatcher struct {
	workers     []chan ports.Notification
	mailer      ports.Mailer
	sendTimeout time.Duration
	log         zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.NotificationSink = (*Dispatcher)(nil)

func NewDispatcher(mailer ports.Mailer, opts Options, log zerolog.Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}
	d := &Dispatcher{
		workers:     make([]chan ports.Notification, opts.Workers),
		mailer:      mailer,
		sendTimeout: opts.SendTimeout,
		log:         log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, opts.Buffer)
	}
	return d
}

// Start launches the worker goroutines. Each worker runs until Stop closes
// its channel and the backlog is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues n without blocking. When the worker's buffer is full or
// the dispatcher is stopped the notification is dropped and logged.
func (d *Dispatcher) Notify(n ports.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(n, "dispatcher stopped")
		return
	}

	idx := d.shardIndex(n.To)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.drop(n, "queue full")
	}
}

// Stop refuses new notifications and waits until queued ones are sent or
// ctx expires.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(to)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))

	for n := range ch {
		depth.Dec()
		d.send(ctx, id, n)
	}
}

func (d *Dispatcher) send(ctx context.Context, id int, n ports.Notification) {
	// Delivery outlives the Start context so a shutdown still drains the backlog.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.mailer.Send(sendCtx, n)
	metrics.NotificationSendDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		d.log.Warn().Err(err).
			Str("to", n.To).
			Str("subject", n.Subject).
			Int("worker_id", id).
			Msg("notification delivery failed")
		return
	}
	metrics.Notifications.WithLabelValues("sent").Inc()
}

func (d *Dispatcher) drop(n ports.Notification, reason string) {
	metrics.Notifications.WithLabelValues("dropped").Inc()
	d.log.Warn().
		Str("to", n.To).
		Str("subject", n.Subject).
		Str("reason", reason).
		Msg("notification dropped")
}
