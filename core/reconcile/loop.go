package reconcile

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultTickInterval is the scheduler period used when none is configured.
const DefaultTickInterval = 100 * time.Millisecond

// inboxSize bounds how many host notifications may wait for the loop.
const inboxSize = 1024

// ErrLoopStopped is returned by Do when the loop is no longer running.
var ErrLoopStopped = errors.New("reconcile loop stopped")

// Loop is the single goroutine that owns an Engine. Host notifications,
// ticks and operator commands are all processed one at a time from its inbox.
type Loop struct {
	engine *Engine
	tick   time.Duration
	inbox  chan func(*Engine)
	done   chan struct{}
	logger *zap.Logger
}

var _ Listener = (*Loop)(nil)

// NewLoop creates a Loop driving engine every tick.
func NewLoop(engine *Engine, tick time.Duration, logger *zap.Logger) *Loop {
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		engine: engine,
		tick:   tick,
		inbox:  make(chan func(*Engine), inboxSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run processes the inbox and drives Engine.Tick until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	l.logger.Info("Reconcile loop started", zap.Duration("tick", l.tick))

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Reconcile loop stopped")
			return ctx.Err()
		case fn := <-l.inbox:
			fn(l.engine)
		case now := <-ticker.C:
			dt := now.Sub(last)
			if dt <= 0 {
				dt = l.tick
			}
			last = now
			l.engine.Tick(dt)
		}
	}
}

// Post queues fn for the loop without waiting for it to run.
// It blocks only while the inbox is full.
func (l *Loop) Post(fn func(*Engine)) {
	select {
	case l.inbox <- fn:
	case <-l.done:
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(*Engine)) error {
	finished := make(chan struct{})
	job := func(e *Engine) {
		defer close(finished)
		fn(e)
	}

	select {
	case l.inbox <- job:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Spawned forwards a host spawn notification to the engine.
func (l *Loop) Spawned(obj Object) {
	l.Post(func(e *Engine) { e.Spawned(obj) })
}

// Destroyed forwards a host destroy notification to the engine.
func (l *Loop) Destroyed(obj Object) {
	l.Post(func(e *Engine) { e.Destroyed(obj) })
}

// Scan runs a full host scan on the loop and returns how many generators were
// newly tracked.
func (l *Loop) Scan(ctx context.Context, host Host) (int, error) {
	var added int
	err := l.Do(ctx, func(e *Engine) {
		added = e.Scan(host.Scan())
	})
	return added, err
}
