package assignmentstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/danahub/internal/app/assignments"
	assignmentstore "github.com/dalemusser/danahub/internal/app/store/assignments"
	"github.com/dalemusser/danahub/internal/domain/models"
	"github.com/dalemusser/danahub/internal/testutil"
)

func TestStore_SeedAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.Seed(ctx, assignmentstore.SampleAssignments())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 3 {
		t.Errorf("seeded: got %d, want 3", n)
	}

	// A second seed is a no-op.
	if n, err := store.Seed(ctx, assignmentstore.SampleAssignments()); err != nil || n != 0 {
		t.Errorf("second Seed: n=%d err=%v", n, err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list: got %d, want 3", len(list))
	}
	if list[0].Family.FamilyName != "Perera Family" {
		t.Errorf("first family: got %q", list[0].Family.FamilyName)
	}
	if !list[0].Date.Equal(models.NewDate(2025, time.June, 20)) {
		t.Errorf("date round trip: got %s", list[0].Date)
	}
	if list[0].Confirmation.IsConfirmed() {
		t.Error("seeded assignments are pending")
	}
}

func TestStore_CreateContinuesAfterSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seed := assignmentstore.SampleAssignments()
	if _, err := store.Seed(ctx, seed); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	created, err := store.Create(ctx, seed[0])
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 4 {
		t.Errorf("created id: got %d, want 4", created.ID)
	}
}

func TestStore_ConfirmAndRevert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Seed(ctx, assignmentstore.SampleAssignments()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	a, err := store.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	on := models.NewDate(2025, time.June, 23)
	a.Confirmation = models.Confirmed(on)
	if _, err := store.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := store.Get(ctx, 2)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if d, ok := got.Confirmation.ConfirmedOn(); !ok || !d.Equal(on) {
		t.Errorf("confirmed on: got %s (ok=%v), want %s", d, ok, on)
	}

	got.Confirmation = models.Pending()
	if _, err := store.Update(ctx, got); err != nil {
		t.Fatalf("Update to pending: %v", err)
	}
	again, _ := store.Get(ctx, 2)
	if again.Confirmation.IsConfirmed() {
		t.Error("expected pending after revert")
	}
}

func TestStore_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Get(ctx, 404); !errors.Is(err, assignments.ErrNotFound) {
		t.Errorf("Get: got %v, want ErrNotFound", err)
	}
	if _, err := store.Update(ctx, models.Assignment{ID: 404}); !errors.Is(err, assignments.ErrNotFound) {
		t.Errorf("Update: got %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, 404); !errors.Is(err, assignments.ErrNotFound) {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
}
