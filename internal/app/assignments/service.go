package assignments

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/danahub/internal/domain/models"
)

// Repository persists the assignment collection. The memory, Mongo and remote
// API stores implement it. Get, Update and Delete return ErrNotFound (possibly
// wrapped) for an unknown ID; Create assigns the ID.
type Repository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	Get(ctx context.Context, id int64) (models.Assignment, error)
	Create(ctx context.Context, a models.Assignment) (models.Assignment, error)
	Update(ctx context.Context, a models.Assignment) (models.Assignment, error)
	Delete(ctx context.Context, id int64) error
}

// Service runs the assignment lifecycle against a Repository.
type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService returns a Service whose "today" is taken in loc (UTC if nil).
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// SetClock replaces the time source. Tests use it to pin "today".
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Today is the current calendar day in the service's time zone.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now().In(s.loc))
}

func (s *Service) List(ctx context.Context) ([]models.Assignment, error) {
	return s.repo.List(ctx)
}

// Search lists the assignments matching query (see Filter).
func (s *Service) Search(ctx context.Context, query string) ([]models.Assignment, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(list, query), nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Assignment, error) {
	return s.repo.Get(ctx, id)
}

// Pairings lists the temple-dana projection of the current collection.
func (s *Service) Pairings(ctx context.Context) ([]PairingView, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Pairings(list), nil
}

// Create schedules a new, pending assignment.
func (s *Service) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	a.ID = 0
	a.Confirmation = models.Pending()
	if err := a.Validate(); err != nil {
		return models.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}
	return s.repo.Create(ctx, a)
}

// Confirm moves the assignment to Confirmed(today). It reports whether
// anything changed; confirming a confirmed assignment writes nothing.
func (s *Service) Confirm(ctx context.Context, id int64) (models.Assignment, bool, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Assignment{}, false, err
	}
	next, changed, err := Transition(a, s.Today())
	if err != nil || !changed {
		return next, false, err
	}
	saved, err := s.repo.Update(ctx, next)
	if err != nil {
		return models.Assignment{}, false, err
	}
	return saved, true, nil
}

// Delete removes the assignment. Callers gate this on authz.CanDelete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
