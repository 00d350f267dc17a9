// Package shutdown runs cleanup hooks when the process is asked to stop.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Handler collects shutdown hooks and runs them, newest first, once a stop
// signal arrives or the context passed to Wait is cancelled.
type Handler struct {
	timeout time.Duration
	mu      sync.Mutex
	hooks   []func(context.Context) error
}

// NewHandler creates a handler whose hooks share the given timeout.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{timeout: timeout}
}

// OnShutdown registers a shutdown hook.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Wait blocks until SIGINT, SIGTERM or ctx is done, then runs the hooks in
// reverse registration order. All hook errors are joined.
func (h *Handler) Wait(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()
	return h.Run()
}

// Run executes the hooks immediately.
func (h *Handler) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]func(context.Context) error, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
