package myqueue

import (
	"context"
	"os"
	"sync"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = func(c context.Context) (TaskQueuer, func(), error) {
			return NewInMemoryTaskQueue(), func() {}, nil
		}
	}
}

// InMemoryTaskQueue only records tasks: nothing is ever dispatched
type InMemoryTaskQueue struct {
	sync.Mutex
	tasks []Task
	seen  map[string]bool
}

func NewInMemoryTaskQueue() *InMemoryTaskQueue {
	return &InMemoryTaskQueue{
		seen: map[string]bool{},
	}
}

func (q *InMemoryTaskQueue) Enqueue(c context.Context, task Task) error {
	q.Lock()
	defer q.Unlock()

	if q.seen[task.UID] {
		return nil
	}
	q.seen[task.UID] = true
	q.tasks = append(q.tasks, task)

	return nil
}

func (q *InMemoryTaskQueue) Attempts(c context.Context, taskUID string) (Attempts, error) {
	return Attempts{}, nil
}

// Tasks returns the enqueued tasks in order of arrival
func (q *InMemoryTaskQueue) Tasks() []Task {
	q.Lock()
	defer q.Unlock()

	return append([]Task{}, q.tasks...)
}
