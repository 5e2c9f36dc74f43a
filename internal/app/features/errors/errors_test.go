package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/danahub/internal/app/apiclient"
	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/app/coordinator"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/system/formutil"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"github.com/dalemusser/danahub/internal/app/system/ratelimit"
	"github.com/dalemusser/danahub/internal/app/system/validators"
	"github.com/dalemusser/danahub/internal/testutil"
	"go.uber.org/zap"
)

func TestClassify(t *testing.T) {
	fe := &validators.FieldErrors{}
	fe.Add("name", "is required")
	remote := &apiclient.APIError{Method: "DELETE", Path: "/danas/9", Status: http.StatusNotFound}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("create dana: %w", fe), http.StatusUnprocessableEntity},
		{"confirmation", &uierrors.ConfirmationRequired{Prompt: "sure?"}, http.StatusConflict},
		{"bad request", fmt.Errorf("%w: bad id", formutil.ErrBadRequest), http.StatusBadRequest},
		{"rate limited", ratelimit.ErrLimited, http.StatusTooManyRequests},
		{"forbidden", coordinator.ErrForbidden, http.StatusForbidden},
		{"in flight", coordinator.ErrInFlight, http.StatusConflict},
		{"not yet due", assignments.ErrNotYetDue, http.StatusConflict},
		{"not found", assignments.ErrNotFound, http.StatusNotFound},
		{"remote not found", fmt.Errorf("delete dana: %w: %w", coordinator.ErrMutationFailed, remote), http.StatusNotFound},
		{"remote failure", fmt.Errorf("create dana: %w: %w", coordinator.ErrMutationFailed, errors.New("HTTP 500")), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got, _, _ := uierrors.Classify(tc.err); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWrite_FieldsAndNotifications(t *testing.T) {
	fe := &validators.FieldErrors{}
	fe.Add("telephone", "is required")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/families", nil)

	uierrors.NewErrorLogger(zap.NewNop()).Write(rec, req, fe, []notify.Notification{notify.Error("Failed to create family")})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", rec.Code)
	}
	var env uierrors.Envelope
	testutil.DecodeJSON(t, rec, &env)
	if env.Error != "validation" || env.Fields["telephone"] != "is required" {
		t.Errorf("envelope: %+v", env)
	}
	if len(env.Notifications) != 1 || env.Notifications[0].Level != notify.LevelError {
		t.Errorf("notifications: %+v", env.Notifications)
	}
}

func TestWrite_ConfirmationPrompt(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assignments/1/delete", nil)
	uierrors.NewErrorLogger(zap.NewNop()).Write(rec, req, &uierrors.ConfirmationRequired{Prompt: "Delete Perera Family?"}, nil)

	var env uierrors.Envelope
	testutil.DecodeJSON(t, rec, &env)
	if rec.Code != http.StatusConflict || env.Prompt != "Delete Perera Family?" {
		t.Errorf("got %d %+v", rec.Code, env)
	}
}

func TestForbiddenAndUnauthorized(t *testing.T) {
	h := uierrors.NewHandler()

	rec := httptest.NewRecorder()
	h.Forbidden(rec, httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("forbidden: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Unauthorized(rec, httptest.NewRequest(http.MethodGet, "/unauthorized", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthorized: got %d", rec.Code)
	}
}
