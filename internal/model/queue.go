package model

import (
	"sync"
	"time"
)

// Scheduler runs a task once after a delay. Implementations must not run the task
// synchronously inside Schedule, because callers hold the game lock.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

// TimerScheduler fires each task on its own timer goroutine.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, task func()) {
	time.AfterFunc(delay, task)
}

// QueueScheduler holds tasks until the owner drains them with RunPending. It is the
// event loop for the terminal game and for tests, which decide themselves when a delay
// has passed.
type QueueScheduler struct {
	tasks []func()
	mu    sync.Mutex
}

func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{
		tasks: []func(){},
	}
}

func (q *QueueScheduler) Schedule(_ time.Duration, task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.tasks = append(q.tasks, task)
}

// RunPending runs every queued task in FIFO order, including tasks queued while
// draining, and returns how many ran.
func (q *QueueScheduler) RunPending() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		next := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		next()
		ran++
	}
}

func (q *QueueScheduler) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
