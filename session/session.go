// Package session runs the single goroutine that owns a view and its
// engine. Notifications, frame ticks and closures posted from other
// goroutines are all serialized through Run.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"golf-client/golf"
	"golf-client/view"
	"golf-client/wsutil"
)

// ErrDisconnected is returned by Run when the transport stops.
var ErrDisconnected = errors.New("server connection closed")

// ErrStopped is returned to callers of Do once Run has exited.
var ErrStopped = errors.New("session stopped")

// Clock is the engine's frame driver.
type Clock interface {
	Advance(dt time.Duration)
}

// Session owns a view. Only Run touches it; everything else goes through Do
// or Post.
type Session struct {
	ID uuid.UUID

	view  *view.View
	clock Clock
	in    <-chan golf.Notification
	frame time.Duration

	// Disconnected, when set, ends Run with ErrDisconnected once closed.
	Disconnected <-chan struct{}

	calls chan func()
	Done  chan struct{}
}

// New creates a session applying notifications from in to v and advancing
// clock once per frame.
func New(v *view.View, clock Clock, in <-chan golf.Notification, frame time.Duration) *Session {
	return &Session{
		ID:    uuid.New(),
		view:  v,
		clock: clock,
		in:    in,
		frame: frame,
		calls: make(chan func(), 16),
		Done:  make(chan struct{}),
	}
}

// Run is the main loop. It returns when ctx is done or the transport
// disconnects, closing the view on the way out.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.Done)
	defer s.view.Close()

	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	slog.Info("session started", "tag", "session", "session", s.ID)
	for {
		select {
		case n := <-s.in:
			s.apply(n)
		case <-ticker.C:
			s.clock.Advance(s.frame)
		case fn := <-s.calls:
			fn()
		case <-s.Disconnected:
			slog.Warn("transport closed", "tag", "session", "session", s.ID)
			return ErrDisconnected
		case <-ctx.Done():
			slog.Info("session stopped", "tag", "session", "session", s.ID)
			return ctx.Err()
		}
	}
}

func (s *Session) apply(n golf.Notification) {
	if err := s.view.Apply(n); err != nil {
		slog.Error("notification rejected", "tag", "view", "session", s.ID, "notification", n.Name(), "err", err)
		return
	}
	slog.Debug("notification applied", "tag", "session", "notification", n.Name(), "state", s.view.State())
}

// Post queues fn to run on the session goroutine without waiting. It
// reports whether fn was queued.
func (s *Session) Post(fn func()) bool {
	select {
	case <-s.Done:
		return false
	default:
	}
	return wsutil.SafeSend(s.calls, fn)
}

// Do runs fn on the session goroutine and waits for it to finish.
func (s *Session) Do(ctx context.Context, fn func(v *view.View)) error {
	select {
	case <-s.Done:
		return ErrStopped
	default:
	}
	finished := make(chan struct{})
	call := func() {
		defer close(finished)
		fn(s.view)
	}
	select {
	case s.calls <- call:
	case <-s.Done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-s.Done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Describe returns the view summary, read on the session goroutine.
func (s *Session) Describe(ctx context.Context) (view.Summary, error) {
	var out view.Summary
	err := s.Do(ctx, func(v *view.View) { out = v.Summary() })
	return out, err
}
