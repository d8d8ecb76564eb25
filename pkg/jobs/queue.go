// Package jobs runs the worker pool behind the export pipeline. Tasks
// reference an export row by ID; the heavy state lives in Postgres and a
// dropped task only delays the render, it never loses data.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task points a worker at one export to render.
type Task struct {
	Ref      string // export job row ID
	Kind     string // export type, for logs only
	Attempt  int
	QueuedAt time.Time
}

// Handler renders the export a task references.
type Handler func(context.Context, Task) error

// Options tunes the worker pool.
type Options struct {
	Workers     int
	Buffer      int
	MaxAttempts int
	Backoff     time.Duration
	Logger      *zap.Logger
}

// Queue fans tasks out to render workers. Failed tasks are requeued with
// a linear backoff until MaxAttempts is spent.
type Queue struct {
	name   string
	handle Handler

	workers     int
	maxAttempts int
	backoff     time.Duration
	logger      *zap.Logger

	tasks   chan Task
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewQueue builds a queue that feeds tasks to the handler.
func NewQueue(name string, handle Handler, opts Options) *Queue {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Buffer <= 0 {
		opts.Buffer = opts.Workers * 4
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Queue{
		name:        name,
		handle:      handle,
		workers:     opts.Workers,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
		logger:      opts.Logger,
		tasks:       make(chan Task, opts.Buffer),
	}
}

// Start launches the workers. Calling Start twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.logger.Info("export workers started",
		zap.String("queue", q.name),
		zap.Int("workers", q.workers))
}

// Stop cancels the workers and waits for in-flight renders to finish.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	q.logger.Info("export workers stopped", zap.String("queue", q.name))
}

// Push hands a task to the pool. It blocks while the buffer is full and
// fails once the queue has stopped.
func (q *Queue) Push(task Task) error {
	q.mu.Lock()
	ctx := q.ctx
	started := q.started
	q.mu.Unlock()

	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if task.QueuedAt.IsZero() {
		task.QueuedAt = time.Now().UTC()
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.tasks <- task:
		return nil
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case task := <-q.tasks:
			if err := q.handle(q.ctx, task); err != nil {
				q.retry(task, err)
			}
		}
	}
}

func (q *Queue) retry(task Task, err error) {
	task.Attempt++
	if task.Attempt >= q.maxAttempts {
		q.logger.Error("export task abandoned",
			zap.String("queue", q.name),
			zap.String("export_id", task.Ref),
			zap.String("type", task.Kind),
			zap.Int("attempts", task.Attempt),
			zap.Error(err))
		return
	}
	delay := q.backoff * time.Duration(task.Attempt)
	q.logger.Warn("export task failed, retrying",
		zap.String("queue", q.name),
		zap.String("export_id", task.Ref),
		zap.String("type", task.Kind),
		zap.Int("attempt", task.Attempt),
		zap.Duration("backoff", delay),
		zap.Error(err))

	go func(t Task) {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
			return
		case <-timer.C:
			if pushErr := q.Push(t); pushErr != nil {
				q.logger.Error("failed to requeue export task",
					zap.String("queue", q.name),
					zap.String("export_id", t.Ref),
					zap.Error(pushErr))
			}
		}
	}(task)
}
