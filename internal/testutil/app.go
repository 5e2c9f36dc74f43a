package testutil

import (
	"testing"
	"time"

	"github.com/dalemusser/danahub/internal/app/apiclient"
	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/app/coordinator"
	assignmentstore "github.com/dalemusser/danahub/internal/app/store/assignments"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"go.uber.org/zap"
)

// NewCoordinator wires a coordinator against a fresh ExternalAPI and a
// memory assignment store seeded with the sample data. The clock is pinned
// to Now.
func NewCoordinator(t *testing.T) (*coordinator.Coordinator, *ExternalAPI) {
	t.Helper()
	api := NewExternalAPI(t)
	client, err := apiclient.NewClient(apiclient.Config{BaseURL: api.URL, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("apiclient.NewClient: %v", err)
	}
	mem, err := assignmentstore.NewMemory(assignmentstore.SampleAssignments())
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	svc := assignments.NewService(mem, time.UTC)
	svc.SetClock(Clock(Now))

	co := coordinator.New(coordinator.Config{
		API:         client,
		Assignments: svc,
		Notifier:    notify.Dispatcher{Log: zap.NewNop()},
		Metrics:     coordinator.NewMetrics(nil),
		Logger:      zap.NewNop(),
	})
	return co, api
}
