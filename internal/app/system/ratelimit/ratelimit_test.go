package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/danahub/internal/app/system/ratelimit"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAllow_WindowResets(t *testing.T) {
	l := ratelimit.New(2, time.Minute)
	defer l.Stop()

	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	l.SetClock(func() time.Time { return now })

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Error("third request in the window should be limited")
	}
	if !l.Allow("b") {
		t.Error("keys are counted separately")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining: got %d, want 0", got)
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Error("a new window should allow the key again")
	}
	if got := l.Remaining("a"); got != 1 {
		t.Errorf("Remaining after reset: got %d, want 1", got)
	}
}

func TestNilLimiterAllows(t *testing.T) {
	var l *ratelimit.Limiter
	if !l.Allow("x") {
		t.Error("nil limiter should allow")
	}
	l.Stop()
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:4312"
	if got := ratelimit.ClientIP(r); got != "10.0.0.5" {
		t.Errorf("RemoteAddr: got %q", got)
	}

	r.Header.Set("X-Real-IP", "192.168.1.9")
	if got := ratelimit.ClientIP(r); got != "192.168.1.9" {
		t.Errorf("X-Real-IP: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	if got := ratelimit.ClientIP(r); got != "203.0.113.7" {
		t.Errorf("X-Forwarded-For: got %q", got)
	}
}
