package viewer

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Runtime drives one App on a single goroutine. Events arrive through Send,
// Cmds run on their own goroutines and post their results back, and every
// update is followed by a call to the view callback.
type Runtime struct {
	app    *App
	onView func(View)
	logger *zap.Logger

	msgs chan Msg
	done chan struct{}
	wg   sync.WaitGroup
}

// NewRuntime creates a Runtime for app. onView is called on the loop
// goroutine after Init and after every message.
func NewRuntime(app *App, onView func(View), logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onView == nil {
		onView = func(View) {}
	}
	return &Runtime{
		app:    app,
		onView: onView,
		logger: logger,
		msgs:   make(chan Msg, 16),
		done:   make(chan struct{}),
	}
}

// Send queues msg for the loop. It reports false once the loop has stopped.
func (r *Runtime) Send(msg Msg) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.msgs <- msg:
		return true
	case <-r.done:
		return false
	}
}

// Run processes messages until ctx is canceled, then waits for in-flight
// commands to return.
func (r *Runtime) Run(ctx context.Context) error {
	defer func() {
		close(r.done)
		r.wg.Wait()
	}()

	r.exec(ctx, r.app.Init())
	r.onView(r.app.View())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-r.msgs:
			cmd := r.app.Update(msg)
			r.onView(r.app.View())
			r.exec(ctx, cmd)
		}
	}
}

func (r *Runtime) exec(ctx context.Context, cmd Cmd) {
	if cmd == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		msg := cmd(ctx)
		if msg == nil {
			return
		}
		select {
		case r.msgs <- msg:
		case <-ctx.Done():
			r.logger.Debug("dropping command result after shutdown")
		}
	}()
}
