// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/danahub/internal/app/apiclient"
	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/app/coordinator"
	"github.com/dalemusser/danahub/internal/app/system/formutil"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"github.com/dalemusser/danahub/internal/app/system/ratelimit"
	"github.com/dalemusser/danahub/internal/app/system/validators"
	"go.uber.org/zap"
)

// Envelope is the JSON body of every error response.
type Envelope struct {
	Error         string                `json:"error"`
	Message       string                `json:"message"`
	Fields        map[string]string     `json:"fields,omitempty"`
	Prompt        string                `json:"prompt,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// ConfirmationRequired is returned for a destructive action submitted
// without acknowledging Prompt.
type ConfirmationRequired struct {
	Prompt string
}

func (e *ConfirmationRequired) Error() string { return "confirmation required" }

// Classify maps an error onto a status code, an error code and the message
// shown to the user.
func Classify(err error) (status int, code, message string) {
	var fe *validators.FieldErrors
	var cr *ConfirmationRequired
	switch {
	case stderrors.As(err, &fe):
		return http.StatusUnprocessableEntity, "validation", "Please correct the highlighted fields."
	case stderrors.As(err, &cr):
		return http.StatusConflict, "confirmation_required", cr.Prompt
	case stderrors.Is(err, formutil.ErrBadRequest):
		return http.StatusBadRequest, "bad_request", "The request could not be read."
	case stderrors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests, "rate_limited", "Too many attempts. Please wait a minute and try again."
	case stderrors.Is(err, coordinator.ErrForbidden):
		return http.StatusForbidden, "forbidden", "You don't have permission to do that."
	case stderrors.Is(err, coordinator.ErrInFlight):
		return http.StatusConflict, "in_flight", "That request is already in progress."
	case stderrors.Is(err, assignments.ErrNotYetDue):
		return http.StatusConflict, "not_yet_due", "This assignment can't be confirmed before its date."
	case stderrors.Is(err, assignments.ErrNotFound), stderrors.Is(err, apiclient.ErrNotFound):
		return http.StatusNotFound, "not_found", "The requested item no longer exists."
	case stderrors.Is(err, coordinator.ErrMutationFailed):
		return http.StatusBadGateway, "mutation_failed", "The change could not be saved. Please try again."
	}
	return http.StatusInternalServerError, "internal", "Something went wrong."
}

// ErrorLogger writes error responses and logs the ones that are the
// server's fault.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Record classifies err and logs it: server faults at error level, rejected
// requests at debug.
func (e *ErrorLogger) Record(r *http.Request, err error) (status int, code, message string) {
	status, code, message = Classify(err)
	if status >= http.StatusInternalServerError {
		e.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	} else {
		e.Log.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.String("code", code),
			zap.Error(err))
	}
	return status, code, message
}

// Write classifies err and writes the JSON envelope, including any
// notifications the failed action produced.
func (e *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, err error, notes []notify.Notification) {
	status, code, msg := e.Record(r, err)
	env := Envelope{Error: code, Message: msg, Notifications: notes}

	var fe *validators.FieldErrors
	var cr *ConfirmationRequired
	switch {
	case stderrors.As(err, &fe):
		env.Fields = fe.Fields
	case stderrors.As(err, &cr):
		env.Prompt = cr.Prompt
	}
	WriteJSON(w, status, env)
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Handler serves the pages auth middleware redirects browsers to.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden handles GET /forbidden.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusForbidden, Envelope{Error: "forbidden", Message: "You don't have permission to view this page."})
}

// Unauthorized handles GET /unauthorized.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusUnauthorized, Envelope{Error: "unauthorized", Message: "Please sign in to continue."})
}
