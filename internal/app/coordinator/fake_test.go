package coordinator_test

import (
	"context"
	"errors"
	"sync"

	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/domain/models"
)

var errRemote = errors.New("remote: HTTP 500")

// fakeAPI is an in-memory external API. Setting fail makes every mutation
// fail; block makes mutations wait until it is closed or their context ends,
// and listBlock does the same for list reads.
type fakeAPI struct {
	mu       sync.Mutex
	danas    []models.Dana
	families []models.Family
	temples  []models.Temple
	nextID   int64

	fail    bool
	failAll bool
	block     chan struct{}
	started   chan struct{}
	listBlock chan struct{}

	calls     int
	listCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		danas: []models.Dana{
			{ID: 1, Name: "Morning Heel Dana", Description: "Early morning rice offering", Time: models.DanaMorning},
			{ID: 2, Name: "Buddha Pooja", Description: "Midday alms offering", Time: models.DanaAfternoon},
		},
		families: []models.Family{
			{ID: 1, FamilyName: "Perera Family", Address: "No 123, Temple Road", Telephone: "0112695161"},
			{ID: 2, FamilyName: "Silva Family", Address: "No 456, Lake Road", Telephone: "0112435127"},
			{ID: 3, FamilyName: "Fernando Family", Address: "No 789, Station Road", Telephone: "0112691378"},
		},
		temples: []models.Temple{
			{ID: 1, Name: "Sri Vajiraramaya"},
			{ID: 2, Name: "Gangaramaya"},
			{ID: 3, Name: "Dipaduttaramaya"},
		},
		nextID: 100,
	}
}

func (f *fakeAPI) mutate(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	fail, block, started := f.fail, f.block, f.started
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if err := wait(ctx, block); err != nil {
		return err
	}
	if fail {
		return errRemote
	}
	return nil
}

func (f *fakeAPI) list(ctx context.Context) error {
	f.mu.Lock()
	f.listCalls++
	failAll, block := f.failAll, f.listBlock
	f.mu.Unlock()
	if err := wait(ctx, block); err != nil {
		return err
	}
	if failAll {
		return errRemote
	}
	return nil
}

func wait(ctx context.Context, block chan struct{}) error {
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) ListDanas(ctx context.Context) ([]models.Dana, error) {
	if err := f.list(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Dana(nil), f.danas...), nil
}

func (f *fakeAPI) CreateDana(ctx context.Context, in models.DanaFields) (models.Dana, error) {
	if err := f.mutate(ctx); err != nil {
		return models.Dana{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	d := models.Dana{ID: f.nextID, Name: in.Name, Description: in.Description, Time: in.Time}
	f.danas = append(f.danas, d)
	return d, nil
}

func (f *fakeAPI) UpdateDana(ctx context.Context, id int64, in models.DanaFields) (models.Dana, error) {
	if err := f.mutate(ctx); err != nil {
		return models.Dana{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.danas {
		if f.danas[i].ID == id {
			f.danas[i] = models.Dana{ID: id, Name: in.Name, Description: in.Description, Time: in.Time}
			return f.danas[i], nil
		}
	}
	return models.Dana{}, errRemote
}

func (f *fakeAPI) DeleteDana(ctx context.Context, id int64) error {
	if err := f.mutate(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.danas {
		if f.danas[i].ID == id {
			f.danas = append(f.danas[:i:i], f.danas[i+1:]...)
			return nil
		}
	}
	return errRemote
}

func (f *fakeAPI) ListFamilies(ctx context.Context) ([]models.Family, error) {
	if err := f.list(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Family(nil), f.families...), nil
}

func (f *fakeAPI) CreateFamily(ctx context.Context, in models.FamilyFields) (models.Family, error) {
	if err := f.mutate(ctx); err != nil {
		return models.Family{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	fam := models.Family{ID: f.nextID, FamilyName: in.FamilyName, Address: in.Address, Telephone: in.Telephone}
	f.families = append(f.families, fam)
	return fam, nil
}

func (f *fakeAPI) UpdateFamily(ctx context.Context, id int64, in models.FamilyFields) (models.Family, error) {
	if err := f.mutate(ctx); err != nil {
		return models.Family{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.families {
		if f.families[i].ID == id {
			f.families[i] = models.Family{ID: id, FamilyName: in.FamilyName, Address: in.Address, Telephone: in.Telephone}
			return f.families[i], nil
		}
	}
	return models.Family{}, errRemote
}

func (f *fakeAPI) DeleteFamily(ctx context.Context, id int64) error {
	if err := f.mutate(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.families {
		if f.families[i].ID == id {
			f.families = append(f.families[:i:i], f.families[i+1:]...)
			return nil
		}
	}
	return errRemote
}

func (f *fakeAPI) ListTemples(ctx context.Context) ([]models.Temple, error) {
	if err := f.list(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Temple(nil), f.temples...), nil
}

func (f *fakeAPI) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// failingRepo wraps an assignments.Repository and fails writes on demand.
type failingRepo struct {
	inner assignments.Repository
	mu    sync.Mutex
	fail  bool
}

func (r *failingRepo) failing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fail
}

func (r *failingRepo) List(ctx context.Context) ([]models.Assignment, error) {
	return r.inner.List(ctx)
}

func (r *failingRepo) Get(ctx context.Context, id int64) (models.Assignment, error) {
	return r.inner.Get(ctx, id)
}

func (r *failingRepo) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if r.failing() {
		return models.Assignment{}, errRemote
	}
	return r.inner.Create(ctx, a)
}

func (r *failingRepo) Update(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if r.failing() {
		return models.Assignment{}, errRemote
	}
	return r.inner.Update(ctx, a)
}

func (r *failingRepo) Delete(ctx context.Context, id int64) error {
	if r.failing() {
		return errRemote
	}
	return r.inner.Delete(ctx, id)
}
