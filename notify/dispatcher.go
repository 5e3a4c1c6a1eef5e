// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrQueueFull = errors.New("notification queue full")
	ErrClosed    = errors.New("notification dispatcher closed")
)

type Options struct {
	QueueSize   int
	Rate        rate.Limit
	Burst       int
	SendTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 100
	}
	if o.Rate == 0 {
		o.Rate = rate.Every(time.Second)
	}
	if o.Burst <= 0 {
		o.Burst = 5
	}
	if o.SendTimeout <= 0 {
		o.SendTimeout = 30 * time.Second
	}
	return o
}

// Dispatcher delivers messages in the background, best effort and at most
// once. Enqueue never blocks; a full queue drops the message. Send failures
// are logged and not retried.
type Dispatcher struct {
	sender   Sender
	renderer *Renderer
	limiter  *rate.Limiter
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Message
	done   chan struct{}
}

// NewDispatcher starts the delivery worker. Call Close to stop it.
func NewDispatcher(sender Sender, renderer *Renderer, opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{
		sender:   sender,
		renderer: renderer,
		limiter:  rate.NewLimiter(opts.Rate, opts.Burst),
		timeout:  opts.SendTimeout,
		queue:    make(chan Message, opts.QueueSize),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

// SendEmail renders the named template and queues the result for delivery.
func (d *Dispatcher) SendEmail(to, subject, template string, data any) error {
	msg, err := d.renderer.Render(to, subject, template, data)
	if err != nil {
		return err
	}
	return d.Enqueue(msg)
}

// Enqueue hands msg to the worker without waiting for delivery.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		slog.Warn("notification dropped", "to", msg.To, "subject", msg.Subject, "error", ErrQueueFull)
		return ErrQueueFull
	}
}

// Close stops intake and waits until queued messages are delivered or ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for msg := range d.queue {
		if err := d.limiter.Wait(context.Background()); err != nil {
			slog.Warn("notification rate limiter failed", "error", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.sender.Send(ctx, msg)
		cancel()

		if err != nil {
			slog.Error("notification delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
			continue
		}
		slog.Debug("notification delivered", "to", msg.To, "subject", msg.Subject)
	}
}
