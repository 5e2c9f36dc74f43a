// internal/app/features/session/handler.go
package session

import (
	"errors"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/auditlog"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/danahub/internal/app/system/formutil"
	"github.com/dalemusser/danahub/internal/app/system/ratelimit"
	"github.com/dalemusser/danahub/internal/app/system/validators"
	"github.com/dalemusser/danahub/internal/app/system/viewdata"
	"github.com/dalemusser/danahub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler signs users in and out. There is no password: the sign-in form
// names the user and picks a role tag, which is what the role gate reads.
type Handler struct {
	SessionMgr *auth.SessionManager
	Audit      *auditlog.Logger
	Today      func() models.Date
	Limiter    *ratelimit.Limiter // sign-in attempts per client IP; nil means unlimited
	shared.Responder
}

func NewHandler(sm *auth.SessionManager, audit *auditlog.Logger, today func() models.Date, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		SessionMgr: sm,
		Audit:      audit,
		Today:      today,
		Responder:  shared.Responder{Sessions: sm, ErrLog: errLog, Log: logger},
	}
}

type signInInput struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Show handles GET /session: the current user, or none.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, viewdata.NewBaseVM(r, h.Today()))
}

// SignIn handles POST /session.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.Allow(ratelimit.ClientIP(r)) {
		h.Log.Warn("sign-in rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		h.Fail(w, r, nil, ratelimit.ErrLimited)
		return
	}

	var in signInInput
	err := formutil.Bind(r, &in, func(f url.Values) {
		in.Name = f.Get("name")
		in.Role = f.Get("role")
	})
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}

	u, err := h.SessionMgr.SignIn(w, r, auth.SessionUser{Name: in.Name, Role: in.Role})
	if errors.Is(err, auth.ErrEmptyName) {
		fe := &validators.FieldErrors{}
		fe.Add("name", "is required")
		h.Fail(w, r, nil, fe)
		return
	}
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	h.Audit.SignedIn(r.Context(), r, u)
	h.Log.Info("user signed in", zap.String("user_id", u.ID), zap.String("role", u.Role))

	r = auth.WithUser(r, &u)
	if !formutil.WantsJSON(r) {
		http.Redirect(w, r, "/assignments", http.StatusSeeOther)
		return
	}
	shared.WriteJSON(w, viewdata.NewBaseVM(r, h.Today()))
}

// SignOut handles POST /session/logout. A broken cookie is still cleared.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Audit.SignedOut(r.Context(), r, *u)
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("sign out: save session", zap.Error(err))
	}
	if !formutil.WantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type notificationsData struct {
	Notifications any `json:"notifications"`
}

// Notifications handles GET /session/notifications, draining the flashes
// left by form posts.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, notificationsData{Notifications: h.Drain(w, r)})
}
