// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/danahub/internal/app/store/audit"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Session controls sign-in/sign-out events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Session string
	// Mutation controls dana, family and assignment changes. Same values.
	Mutation string
}

// Logger writes audit events to zap and, when a store is configured, to the
// audit_events collection.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil when MongoDB is not in use;
// "db" and "all" then only reach zap.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// clientIP prefers the first X-Forwarded-For hop.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID), zap.String("actor_role", event.ActorRole))
	}
	if event.EntityID != 0 {
		fields = append(fields, zap.Int64("entity_id", event.EntityID))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so tests can pass nil.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := l.config.Mutation
	if event.Category == audit.CategorySession {
		setting = l.config.Session
	}
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// SignedIn logs a dev sign-in.
func (l *Logger) SignedIn(ctx context.Context, r *http.Request, u auth.SessionUser) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategorySession,
		EventType: audit.EventSignIn,
		ActorID:   u.ID,
		ActorName: u.Name,
		ActorRole: u.Role,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// SignedOut logs a sign-out.
func (l *Logger) SignedOut(ctx context.Context, r *http.Request, u auth.SessionUser) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategorySession,
		EventType: audit.EventSignOut,
		ActorID:   u.ID,
		ActorName: u.Name,
		ActorRole: u.Role,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// Mutation logs the outcome of a coordinator mutation. entity is the audit
// category ("dana", "family", "assignment") and done the past-tense verb
// ("created", "confirmed"). The actor is taken from the request context.
func (l *Logger) Mutation(ctx context.Context, entity, done string, id int64, err error) {
	if l == nil {
		return
	}
	event := audit.Event{
		Category:  entity,
		EventType: entity + "_" + done,
		EntityID:  id,
		Success:   err == nil,
	}
	if err != nil {
		event.FailureReason = err.Error()
	}
	if u, ok := auth.UserFromContext(ctx); ok {
		event.ActorID = u.ID
		event.ActorName = u.Name
		event.ActorRole = u.Role
	}
	l.Log(ctx, event)
}
