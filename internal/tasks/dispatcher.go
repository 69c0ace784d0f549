// Package tasks runs fire-and-forget work items on background workers. It is
// the in-process replacement for an external task queue: callers submit a
// work item after their write has committed and never wait for the result.
package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// Handler executes one kind of task.
type Handler func(ctx context.Context, task domain.Task) error

// Dispatcher delivers submitted tasks to registered handlers on a fixed pool
// of worker goroutines. Handler failures are logged, not retried across
// process restarts.
type Dispatcher struct {
	logger   *slog.Logger
	queue    chan domain.Task
	workers  int
	handlers map[domain.TaskKind]Handler

	mu      sync.Mutex
	started bool
	wg      sync.WaitGroup
}

// New creates a dispatcher with the given worker count and queue capacity.
func New(logger *slog.Logger, workers, buffer int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 64
	}
	return &Dispatcher{
		logger:   logger,
		queue:    make(chan domain.Task, buffer),
		workers:  workers,
		handlers: make(map[domain.TaskKind]Handler),
	}
}

// Handle registers the handler for a task kind. Must be called before Start.
func (d *Dispatcher) Handle(kind domain.TaskKind, h Handler) {
	d.handlers[kind] = h
}

// Start launches the worker goroutines. ctx bounds the execution of
// individual handlers, not the lifetime of the queue.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run(ctx)
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for task := range d.queue {
		h, ok := d.handlers[task.Kind]
		if !ok {
			d.logger.Warn("no handler for task", "kind", task.Kind)
			continue
		}
		if err := h(ctx, task); err != nil {
			d.logger.Error("task failed", "kind", task.Kind, "err", err)
		}
	}
}

// Submit enqueues a task without blocking the caller. When the queue is full
// the task is dropped and logged; callers never wait on background work.
func (d *Dispatcher) Submit(task domain.Task) {
	select {
	case d.queue <- task:
	default:
		d.logger.Warn("task queue full, dropping task", "kind", task.Kind)
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	d.mu.Unlock()
	close(d.queue)
	d.wg.Wait()
}

// RunPeriodic invokes fn at the given interval until ctx is canceled. Used
// for the scheduled announcement recompute.
func RunPeriodic(ctx context.Context, interval time.Duration, logger *slog.Logger, name string, fn func(context.Context) error) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				logger.Error("periodic task failed", "name", name, "err", err)
			}
		}
	}
}
