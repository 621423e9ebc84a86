// Package eventloop provides a single-threaded cooperative task queue that stands in for the
// host UI runtime's scheduler. Deferred tasks run one at a time, in the order they were queued.
package eventloop

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrClosed is returned by Defer once the loop has been closed.
var ErrClosed = errors.New("event loop closed")

// Scheduler queues work for a later tick.
type Scheduler interface {
	Defer(task func()) error
}

// Loop runs deferred tasks on a single goroutine.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	closing bool
	stopped bool
	done    chan struct{}
}

// New starts a Loop. Callers must Close it to release the goroutine.
func New() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Defer queues task to run on the next tick. It never runs task synchronously,
// even when called from inside another task.
func (l *Loop) Defer(task func()) error {
	if task == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrClosed
	}
	l.queue = append(l.queue, task)
	l.cond.Signal()
	return nil
}

// Close runs queued tasks until the queue is empty and waits for the loop to exit.
// Tasks deferred while it drains, including by the draining tasks themselves, still run.
// Once the loop has exited, Defer returns ErrClosed.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closing {
		l.closing = true
		l.cond.Signal()
	}
	l.mu.Unlock()
	<-l.done
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closing {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.stopped = true
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		runTask(task)
	}
}

func runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("deferred task panicked", "panic", r)
		}
	}()
	task()
}
