package assignments_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/danahub/internal/app/coordinator"
	assignmentsfeature "github.com/dalemusser/danahub/internal/app/features/assignments"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"github.com/dalemusser/danahub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*assignmentsfeature.Handler, *coordinator.Coordinator) {
	t.Helper()
	co, _ := testutil.NewCoordinator(t)
	logger := zap.NewNop()
	return assignmentsfeature.NewHandler(co, nil, uierrors.NewErrorLogger(logger), logger), co
}

type row struct {
	Assignment struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Family struct {
			FamilyName string `json:"familyName"`
		} `json:"family"`
	} `json:"assignment"`
	CanDelete bool `json:"canDelete"`
}

type listResponse struct {
	Query       string `json:"query"`
	Total       int    `json:"total"`
	Assignments []row  `json:"assignments"`
}

type result struct {
	Data struct {
		ID         int64 `json:"id"`
		Changed    bool  `json:"changed"`
		Assignment struct {
			Status           string `json:"status"`
			ConfirmationDate string `json:"confirmationDate"`
		} `json:"assignment"`
	} `json:"data"`
	Notifications []notify.Notification `json:"notifications"`
}

func TestList_FiltersAndMarksDeletable(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		user      testutil.TestUser
		query     string
		want      int
		canDelete bool
	}{
		{testutil.MemberUser(), "perera", 1, false},
		{testutil.HelperUser(), "PERERA", 1, true},
		{testutil.AdminUser(), "", 3, true},
		{testutil.AdminUser(), "kandy", 0, true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/assignments?q="+url.QueryEscape(tc.query), nil)
		req = testutil.WithUser(req, tc.user)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%q: status %d", tc.query, rec.Code)
		}
		var got listResponse
		testutil.DecodeJSON(t, rec, &got)
		if got.Total != 3 || len(got.Assignments) != tc.want {
			t.Errorf("%q: got %d of %d rows, want %d", tc.query, len(got.Assignments), got.Total, tc.want)
		}
		for _, r := range got.Assignments {
			if r.CanDelete != tc.canDelete {
				t.Errorf("%s: canDelete=%v, want %v", tc.user.Role, r.CanDelete, tc.canDelete)
			}
		}
	}
}

func TestPairings(t *testing.T) {
	h, _ := newTestHandler(t)
	req := testutil.WithUser(httptest.NewRequest(http.MethodGet, "/assignments/pairings", nil), testutil.MemberUser())
	rec := httptest.NewRecorder()
	h.Pairings(rec, req)

	var got struct {
		Pairings []struct {
			MinNumberOfFamilies int `json:"minNumberOfFamilies"`
			Confirmed           int `json:"confirmed"`
			Shortfall           int `json:"shortfall"`
			Assignments         []struct {
				ID int64 `json:"id"`
			} `json:"assignments"`
		} `json:"pairings"`
	}
	testutil.DecodeJSON(t, rec, &got)
	if len(got.Pairings) != 3 {
		t.Fatalf("pairings: got %d, want 3", len(got.Pairings))
	}
	first := got.Pairings[0]
	if first.MinNumberOfFamilies != 5 || len(first.Assignments) != 1 || first.Shortfall != 4 || first.Confirmed != 0 {
		t.Errorf("first pairing: %+v", first)
	}
}

func TestCreate_JSON(t *testing.T) {
	h, co := newTestHandler(t)
	body := `{"templeId":2,"danaId":2,"familyId":1,"date":"2025-07-05"}`
	req := httptest.NewRequest(http.MethodPost, "/assignments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, testutil.HelperUser())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}
	var got result
	testutil.DecodeJSON(t, rec, &got)
	if got.Data.ID != 4 {
		t.Errorf("id: got %d, want 4", got.Data.ID)
	}
	if len(got.Notifications) != 1 || got.Notifications[0] != notify.Success("Assignment created successfully") {
		t.Errorf("notifications: %+v", got.Notifications)
	}
	all, _ := co.Assignments(req.Context())
	if len(all) != 4 {
		t.Errorf("assignments after create: got %d", len(all))
	}
}

func TestCreate_Form(t *testing.T) {
	h, _ := newTestHandler(t)
	form := url.Values{"templeId": {"1"}, "danaId": {"1"}, "familyId": {"3"}, "date": {"2025-07-10"}, "minNumberOfFamilies": {"2"}}
	req := testutil.WithUser(testutil.FormRequest("/assignments", form), testutil.HelperUser())
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/assignments" {
		t.Errorf("got %d to %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t)
	form := url.Values{"templeId": {"1"}, "danaId": {"99"}, "familyId": {""}, "date": {"soon"}}
	req := testutil.WithUser(testutil.FormRequest("/assignments", form), testutil.HelperUser())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", rec.Code)
	}
	var env uierrors.Envelope
	testutil.DecodeJSON(t, rec, &env)
	if env.Fields["familyId"] == "" || env.Fields["date"] == "" {
		t.Errorf("fields: %+v", env.Fields)
	}
	if len(env.Notifications) != 0 {
		t.Errorf("validation must not toast: %+v", env.Notifications)
	}
}

func TestConfirm_ThenNoop(t *testing.T) {
	h, _ := newTestHandler(t)

	confirm := func() (int, result) {
		req := testutil.WithUser(httptest.NewRequest(http.MethodPost, "/assignments/1/confirm", nil), testutil.MemberUser())
		req = testutil.WithChiURLParam(req, "id", "1")
		rec := httptest.NewRecorder()
		h.Confirm(rec, req)
		var got result
		testutil.DecodeJSON(t, rec, &got)
		return rec.Code, got
	}

	code, got := confirm()
	if code != http.StatusOK || !got.Data.Changed {
		t.Fatalf("first confirm: %d %+v", code, got)
	}
	if got.Data.Assignment.Status != "confirmed" || got.Data.Assignment.ConfirmationDate != testutil.Today.String() {
		t.Errorf("assignment: %+v", got.Data.Assignment)
	}
	if len(got.Notifications) != 1 {
		t.Errorf("first confirm notifications: %+v", got.Notifications)
	}

	code, got = confirm()
	if code != http.StatusOK || got.Data.Changed || len(got.Notifications) != 0 {
		t.Errorf("second confirm should be a silent no-op: %d %+v", code, got)
	}
}

func TestConfirm_Errors(t *testing.T) {
	h, _ := newTestHandler(t)
	for id, want := range map[string]int{"99": http.StatusNotFound, "abc": http.StatusBadRequest} {
		req := testutil.WithUser(httptest.NewRequest(http.MethodPost, "/assignments/"+id+"/confirm", nil), testutil.MemberUser())
		req = testutil.WithChiURLParam(req, "id", id)
		rec := httptest.NewRecorder()
		h.Confirm(rec, req)
		if rec.Code != want {
			t.Errorf("id %s: got %d, want %d", id, rec.Code, want)
		}
	}
}

func deleteRequest(user testutil.TestUser, id, confirm string) *http.Request {
	target := "/assignments/" + id + "/delete"
	if confirm != "" {
		target += "?confirm=" + confirm
	}
	req := testutil.WithUser(httptest.NewRequest(http.MethodPost, target, nil), user)
	return testutil.WithChiURLParam(req, "id", id)
}

func TestDelete_RequiresAcknowledgement(t *testing.T) {
	h, co := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Delete(rec, deleteRequest(testutil.HelperUser(), "1", ""))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d", rec.Code)
	}
	var env uierrors.Envelope
	testutil.DecodeJSON(t, rec, &env)
	want := "Are you sure you want to delete this assignment for Perera Family? This action cannot be undone."
	if env.Prompt != want {
		t.Errorf("prompt: got %q", env.Prompt)
	}
	all, _ := co.Assignments(httptest.NewRequest("GET", "/", nil).Context())
	if len(all) != 3 {
		t.Errorf("nothing should be deleted, have %d", len(all))
	}
}

func TestDelete_MemberForbidden(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, confirm := range []string{"", "yes"} {
		rec := httptest.NewRecorder()
		h.Delete(rec, deleteRequest(testutil.MemberUser(), "1", confirm))
		if rec.Code != http.StatusForbidden {
			t.Errorf("confirm=%q: got %d, want 403", confirm, rec.Code)
		}
	}
}

func TestDelete_Confirmed(t *testing.T) {
	h, co := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Delete(rec, deleteRequest(testutil.HelperUser(), "2", "yes"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}
	var got result
	testutil.DecodeJSON(t, rec, &got)
	if len(got.Notifications) != 1 || got.Notifications[0] != notify.Success("Assignment deleted successfully") {
		t.Errorf("notifications: %+v", got.Notifications)
	}

	all, _ := co.Assignments(httptest.NewRequest("GET", "/", nil).Context())
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 3 {
		t.Errorf("remaining: %+v", all)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, deleteRequest(testutil.HelperUser(), "2", "yes"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rec.Code)
	}
}

func TestRoutes_RequireSignIn(t *testing.T) {
	h, _ := newTestHandler(t)
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	router := assignmentsfeature.Routes(h, sm)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("signed out: got %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(httptest.NewRequest(http.MethodGet, "/pairings", nil), testutil.MemberUser()))
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: got %d, want 200", rec.Code)
	}
}
