package mode

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultQueueSize bounds the input queue. Keystrokes arrive far slower
// than they drain, so the bound only matters when a handler wedges.
const DefaultQueueSize = 128

// Queue serializes controller work onto one goroutine, preserving
// submission order. When full, new work is dropped rather than blocking
// the event-tap thread that feeds it.
type Queue struct {
	tasks   chan func(context.Context)
	logger  *zap.Logger
	wg      sync.WaitGroup
	started atomic.Bool
	dropped atomic.Uint64
	cancel  context.CancelFunc
}

// NewQueue builds a queue with the given capacity; size <= 0 takes the
// default.
func NewQueue(size int, logger *zap.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{tasks: make(chan func(context.Context), size), logger: logger}
}

// Start launches the worker. Calling Start twice is a no-op.
func (q *Queue) Start(ctx context.Context) {
	if !q.started.CompareAndSwap(false, true) {
		return
	}
	ctx, q.cancel = context.WithCancel(ctx)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case task := <-q.tasks:
				task(ctx)
			}
		}
	}()
}

// Post enqueues work. It never blocks; when the queue is full the task is
// dropped and counted.
func (q *Queue) Post(task func(context.Context)) bool {
	select {
	case q.tasks <- task:
		return true
	default:
		n := q.dropped.Add(1)
		q.logger.Warn("input queue full, dropping task", zap.Uint64("dropped", n))
		return false
	}
}

// Dropped returns how many tasks were discarded since Start.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }

// Stop halts the worker and waits for the in-flight task. Pending tasks
// are discarded.
func (q *Queue) Stop() {
	if !q.started.CompareAndSwap(true, false) {
		return
	}
	q.cancel()
	q.wg.Wait()
}
