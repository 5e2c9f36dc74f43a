package shared_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"github.com/dalemusser/danahub/internal/testutil"
	"go.uber.org/zap"
)

func newResponder(t *testing.T) shared.Responder {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return shared.Responder{Sessions: sm, ErrLog: uierrors.NewErrorLogger(zap.NewNop()), Log: zap.NewNop()}
}

func TestDone_JSON(t *testing.T) {
	rp := newResponder(t)
	req, rec := shared.Recording(httptest.NewRequest(http.MethodPost, "/danas", nil))
	rec.Notify(req.Context(), notify.Success("Dana created successfully"))

	w := httptest.NewRecorder()
	rp.Done(w, req, rec, http.StatusCreated, map[string]int{"id": 3}, "/danas")

	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d", w.Code)
	}
	var res struct {
		Data          map[string]int        `json:"data"`
		Notifications []notify.Notification `json:"notifications"`
	}
	testutil.DecodeJSON(t, w, &res)
	if res.Data["id"] != 3 || len(res.Notifications) != 1 {
		t.Errorf("got %+v", res)
	}
}

func TestDone_FormFlashesAndRedirects(t *testing.T) {
	rp := newResponder(t)
	post := httptest.NewRequest(http.MethodPost, "/danas", nil)
	post.Header.Set("Accept", "text/html")
	req, rec := shared.Recording(post)
	rec.Notify(req.Context(), notify.Success("Dana created successfully"))

	w := httptest.NewRecorder()
	rp.Done(w, req, rec, http.StatusCreated, nil, "/danas")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/danas" {
		t.Fatalf("got %d to %q", w.Code, w.Header().Get("Location"))
	}

	// The flash rides on the cookie into the next request.
	next := httptest.NewRequest(http.MethodGet, "/danas", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	got := rp.Drain(httptest.NewRecorder(), next)
	if len(got) != 1 || got[0] != notify.Success("Dana created successfully") {
		t.Errorf("drained: %+v", got)
	}
}

func TestFail_IncludesNotifications(t *testing.T) {
	rp := newResponder(t)
	req, rec := shared.Recording(httptest.NewRequest(http.MethodPost, "/danas", nil))
	rec.Notify(req.Context(), notify.Error("Failed to create dana"))

	w := httptest.NewRecorder()
	rp.Fail(w, req, rec, errors.New("boom"))

	var env uierrors.Envelope
	testutil.DecodeJSON(t, w, &env)
	if w.Code != http.StatusInternalServerError || len(env.Notifications) != 1 {
		t.Errorf("got %d %+v", w.Code, env)
	}
}

func TestDrain_NoSessions(t *testing.T) {
	rp := shared.Responder{Log: zap.NewNop()}
	if got := rp.Drain(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); got != nil {
		t.Errorf("got %+v", got)
	}
}

func TestFail_FormFlashesAndRedirects(t *testing.T) {
	rp := newResponder(t)
	post := httptest.NewRequest(http.MethodPost, "/danas", nil)
	post.Header.Set("Accept", "text/html")
	req, rec := shared.Recording(post)
	rec.Notify(req.Context(), notify.Error("Failed to create dana"))

	w := httptest.NewRecorder()
	rp.Fail(w, req, rec, errors.New("boom"))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/danas" {
		t.Fatalf("got %d to %q", w.Code, w.Header().Get("Location"))
	}

	next := httptest.NewRequest(http.MethodGet, "/danas", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	got := rp.Drain(httptest.NewRecorder(), next)
	if len(got) != 1 || got[0] != notify.Error("Failed to create dana") {
		t.Errorf("drained: %+v", got)
	}
}

func TestFail_FormConfirmationFlashesPrompt(t *testing.T) {
	rp := newResponder(t)
	post := httptest.NewRequest(http.MethodPost, "/danas/2/delete", nil)
	post.Header.Set("Accept", "text/html")

	w := httptest.NewRecorder()
	rp.Fail(w, post, nil, &uierrors.ConfirmationRequired{Prompt: "Are you sure you want to delete this dana?"})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/danas" {
		t.Fatalf("got %d to %q", w.Code, w.Header().Get("Location"))
	}

	next := httptest.NewRequest(http.MethodGet, "/danas", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	got := rp.Drain(httptest.NewRecorder(), next)
	if len(got) != 1 || got[0] != notify.Error("Are you sure you want to delete this dana?") {
		t.Errorf("drained: %+v", got)
	}
}
