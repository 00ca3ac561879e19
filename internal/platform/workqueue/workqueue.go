// Package workqueue dispatches named units of work to handlers. Units for
// different keys run independently; the queue gives no ordering guarantee
// between them.
package workqueue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrClosed is returned by Submit after the queue stopped accepting work.
var ErrClosed = errors.New("work queue closed")

// Task is a serialisable unit of work. Args are positional and task specific.
type Task struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Args       []string  `json:"args"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewTask builds a task with a fresh id.
func NewTask(name string, args ...string) Task {
	return Task{ID: uuid.NewString(), Name: name, Args: args}
}

// Handler executes one task. The returned error is logged and counted; it is
// never retried by the queue.
type Handler func(ctx context.Context, t Task) error

// Submitter is the only capability producers depend on.
type Submitter interface {
	Submit(ctx context.Context, t Task) (string, error)
}

// Mux routes tasks to handlers by name.
type Mux struct {
	handlers map[string]Handler
}

func NewMux() *Mux {
	return &Mux{handlers: make(map[string]Handler)}
}

// Handle registers h for the task name, replacing any previous handler.
func (m *Mux) Handle(name string, h Handler) {
	m.handlers[name] = h
}

// ErrUnknownTask is returned for tasks without a registered handler.
var ErrUnknownTask = errors.New("unknown task")

// Dispatch runs the handler registered for t.Name.
func (m *Mux) Dispatch(ctx context.Context, t Task) error {
	h, ok := m.handlers[t.Name]
	if !ok {
		return ErrUnknownTask
	}
	return h(ctx, t)
}
