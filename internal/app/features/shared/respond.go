// Package shared holds the response plumbing every danahub feature uses.
package shared

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/danahub/internal/app/system/formutil"
	"github.com/dalemusser/danahub/internal/app/system/navigation"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"go.uber.org/zap"
)

// Result is the JSON body of a successful write.
type Result struct {
	Data          any                   `json:"data,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// Responder finishes requests. Sessions may be nil, in which case form
// callers get no flash.
type Responder struct {
	Sessions *auth.SessionManager
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// Recording returns r with a notification Recorder on its context.
func Recording(r *http.Request) (*http.Request, *notify.Recorder) {
	rec := &notify.Recorder{}
	return r.WithContext(notify.WithRecorder(r.Context(), rec)), rec
}

// Fail reports err. JSON callers get the error envelope with whatever the
// action announced. A failed form post gets those notifications flashed, or
// the error's message when there were none, and is redirected back to the
// section it came from.
func (rp Responder) Fail(w http.ResponseWriter, r *http.Request, rec *notify.Recorder, err error) {
	var notes []notify.Notification
	if rec != nil {
		notes = rec.All()
	}
	if r.Method == http.MethodGet || r.Method == http.MethodHead || rp.Sessions == nil || formutil.WantsJSON(r) {
		rp.ErrLog.Write(w, r, err, notes)
		return
	}

	_, _, msg := rp.ErrLog.Record(r, err)
	var cr *uierrors.ConfirmationRequired
	if errors.As(err, &cr) {
		msg = cr.Prompt
	}
	if len(notes) == 0 {
		notes = []notify.Notification{notify.Error(msg)}
	}
	rp.flash(w, r, notes)
	http.Redirect(w, r, navigation.BackURL(r, navigation.Section(r.URL.Path)), http.StatusSeeOther)
}

// Done finishes a successful write. JSON callers get status and data with
// the notifications; form posts get them flashed and are redirected to back,
// or to a safe "return" URL within the same section.
func (rp Responder) Done(w http.ResponseWriter, r *http.Request, rec *notify.Recorder, status int, data any, back string) {
	notes := rec.All()
	if formutil.WantsJSON(r) {
		uierrors.WriteJSON(w, status, Result{Data: data, Notifications: notes})
		return
	}
	rp.flash(w, r, notes)
	http.Redirect(w, r, navigation.BackURL(r, back), http.StatusSeeOther)
}

// Drain returns and clears the notifications flashed by earlier requests.
func (rp Responder) Drain(w http.ResponseWriter, r *http.Request) []notify.Notification {
	if rp.Sessions == nil {
		return nil
	}
	raw, err := rp.Sessions.Flashes(w, r)
	if err != nil {
		rp.Log.Warn("drain flashes", zap.Error(err))
	}
	out := make([]notify.Notification, 0, len(raw))
	for _, s := range raw {
		out = append(out, notify.Decode(s))
	}
	return out
}

func (rp Responder) flash(w http.ResponseWriter, r *http.Request, notes []notify.Notification) {
	if rp.Sessions == nil {
		return
	}
	for _, n := range notes {
		if err := rp.Sessions.AddFlash(w, r, notify.Encode(n)); err != nil {
			rp.Log.Warn("flash notification", zap.Error(err))
		}
	}
}

// WriteJSON writes v with status 200.
func WriteJSON(w http.ResponseWriter, v any) {
	uierrors.WriteJSON(w, http.StatusOK, v)
}
