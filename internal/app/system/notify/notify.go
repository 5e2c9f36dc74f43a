// Package notify carries user-facing toast notifications from the mutation
// coordinator to whoever shows them. The HTTP layer attaches a Recorder to
// the request context, runs the mutation, then moves what was recorded into
// the session's flash messages and the JSON response.
package notify

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }
func Error(msg string) Notification   { return Notification{Level: LevelError, Message: msg} }

// Notifier receives notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Recorder collects notifications in order. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.list = append(r.list, n)
	r.mu.Unlock()
}

// All returns a copy of what was recorded.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

// Count returns how many notifications of level were recorded.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.list {
		if x.Level == level {
			n++
		}
	}
	return n
}

type ctxKey struct{}

// WithRecorder attaches rec to ctx.
func WithRecorder(ctx context.Context, rec *Recorder) context.Context {
	return context.WithValue(ctx, ctxKey{}, rec)
}

// RecorderFrom returns the Recorder attached to ctx, if any.
func RecorderFrom(ctx context.Context) (*Recorder, bool) {
	rec, ok := ctx.Value(ctxKey{}).(*Recorder)
	return rec, ok && rec != nil
}

// Dispatcher delivers to the Recorder on the context and logs every
// notification. Work started outside a request (the refresh worker) has no
// Recorder; its notifications only reach the log.
type Dispatcher struct {
	Log *zap.Logger
}

func (d Dispatcher) Notify(ctx context.Context, n Notification) {
	if d.Log != nil {
		d.Log.Debug("notification", zap.String("level", string(n.Level)), zap.String("message", n.Message))
	}
	if rec, ok := RecorderFrom(ctx); ok {
		rec.Notify(ctx, n)
	}
}

// Encode turns n into a session flash value.
func Encode(n Notification) string {
	b, _ := json.Marshal(n)
	return string(b)
}

// Decode reverses Encode. A value that is not JSON is treated as a plain
// success message so older flashes still render.
func Decode(s string) Notification {
	var n Notification
	if err := json.Unmarshal([]byte(s), &n); err != nil || n.Message == "" {
		return Success(s)
	}
	return n
}
