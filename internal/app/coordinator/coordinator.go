// Package coordinator is the single path through which danahub changes data.
//
// Every mutation follows the same protocol: validate locally, claim the
// action key, call the remote side once, then either refetch the affected
// cache and announce success, or leave every cache as it was and announce
// the failure. Nothing is written to a cache before the remote side has
// confirmed the change.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"github.com/dalemusser/danahub/internal/app/system/timeouts"
	"github.com/dalemusser/danahub/internal/app/system/validators"
	"github.com/dalemusser/danahub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInFlight is returned when the same action on the same entity is
	// already running. No request was issued.
	ErrInFlight = errors.New("an identical request is already in progress")

	// ErrMutationFailed wraps remote failures. The caches are unchanged and
	// one error notification was emitted.
	ErrMutationFailed = errors.New("mutation failed")

	// ErrForbidden means the caller's role may not perform the action.
	ErrForbidden = errors.New("not allowed for this role")
)

// API is the part of the external API the coordinator uses. *apiclient.Client
// implements it.
type API interface {
	ListDanas(ctx context.Context) ([]models.Dana, error)
	CreateDana(ctx context.Context, f models.DanaFields) (models.Dana, error)
	UpdateDana(ctx context.Context, id int64, f models.DanaFields) (models.Dana, error)
	DeleteDana(ctx context.Context, id int64) error

	ListFamilies(ctx context.Context) ([]models.Family, error)
	CreateFamily(ctx context.Context, f models.FamilyFields) (models.Family, error)
	UpdateFamily(ctx context.Context, id int64, f models.FamilyFields) (models.Family, error)
	DeleteFamily(ctx context.Context, id int64) error

	ListTemples(ctx context.Context) ([]models.Temple, error)
}

// Auditor records mutation outcomes. *auditlog.Logger implements it.
type Auditor interface {
	Mutation(ctx context.Context, entity, done string, id int64, err error)
}

// Config holds the coordinator's collaborators. API and Assignments are
// required; the rest default to no-ops.
type Config struct {
	API         API
	Assignments *assignments.Service
	Notifier    notify.Notifier
	Auditor     Auditor
	Metrics     *Metrics
	Logger      *zap.Logger
}

// Coordinator owns the entity caches and runs every mutation.
type Coordinator struct {
	api      API
	svc      *assignments.Service
	notifier notify.Notifier
	auditor  Auditor
	metrics  *Metrics
	log      *zap.Logger

	danas       *Collection[models.Dana]
	families    *Collection[models.Family]
	temples     *Collection[models.Temple]
	assignments *Collection[models.Assignment]

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New builds a Coordinator. Caches start empty and load on first read.
func New(cfg Config) *Coordinator {
	c := &Coordinator{
		api:      cfg.API,
		svc:      cfg.Assignments,
		notifier: cfg.Notifier,
		auditor:  cfg.Auditor,
		metrics:  cfg.Metrics,
		log:      cfg.Logger,
		inflight: make(map[string]struct{}),
	}
	if c.notifier == nil {
		c.notifier = notify.Dispatcher{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.danas = NewCollection("danas", withReadTimeout(c.log, "list danas", cfg.API.ListDanas))
	c.families = NewCollection("families", withReadTimeout(c.log, "list families", cfg.API.ListFamilies))
	c.temples = NewCollection("temples", withReadTimeout(c.log, "list temples", cfg.API.ListTemples))
	c.assignments = NewCollection("assignments", withReadTimeout(c.log, "list assignments", cfg.Assignments.List))
	return c
}

// withReadTimeout bounds every fetch of a cache by timeouts.Read.
func withReadTimeout[T any](log *zap.Logger, operation string, fetch func(context.Context) ([]T, error)) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Read(), log, operation)
		defer cancel()
		return fetch(ctx)
	}
}

// Today is the assignment service's current day.
func (c *Coordinator) Today() models.Date { return c.svc.Today() }

/*─────────────────────────────────────────────────────────────────────────────*
| Reads                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Coordinator) Danas(ctx context.Context) ([]models.Dana, error) {
	return c.danas.Get(ctx)
}

// SearchDanas filters the cached danas by name or description.
func (c *Coordinator) SearchDanas(ctx context.Context, query string) ([]models.Dana, error) {
	list, err := c.danas.Get(ctx)
	if err != nil {
		return nil, err
	}
	return assignments.FilterDanas(list, query), nil
}

func (c *Coordinator) Families(ctx context.Context) ([]models.Family, error) {
	return c.families.Get(ctx)
}

func (c *Coordinator) Temples(ctx context.Context) ([]models.Temple, error) {
	return c.temples.Get(ctx)
}

func (c *Coordinator) Assignments(ctx context.Context) ([]models.Assignment, error) {
	return c.assignments.Get(ctx)
}

// SearchAssignments filters the cached assignments (see assignments.Filter).
func (c *Coordinator) SearchAssignments(ctx context.Context, query string) ([]models.Assignment, error) {
	list, err := c.assignments.Get(ctx)
	if err != nil {
		return nil, err
	}
	return assignments.Filter(list, query), nil
}

// Pairings projects the cached assignments onto their temple-dana pairings.
func (c *Coordinator) Pairings(ctx context.Context) ([]assignments.PairingView, error) {
	list, err := c.assignments.Get(ctx)
	if err != nil {
		return nil, err
	}
	return assignments.Pairings(list), nil
}

// RefreshAll reloads every cache in parallel. A failing collection keeps its
// previous contents; the first error is returned.
func (c *Coordinator) RefreshAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.refresh(gctx, c.danas) })
	g.Go(func() error { return c.refresh(gctx, c.families) })
	g.Go(func() error { return c.refresh(gctx, c.temples) })
	g.Go(func() error { return c.refresh(gctx, c.assignments) })
	return g.Wait()
}

type refresher interface {
	Name() string
	Refresh(ctx context.Context) error
	Invalidate()
}

func (c *Coordinator) refresh(ctx context.Context, r refresher) error {
	err := r.Refresh(ctx)
	c.metrics.refresh(r.Name(), err)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", r.Name(), err)
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Mutation protocol                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// mutation describes one coordinator action for keys, messages and metrics.
type mutation struct {
	entity  string // "dana", "family", "assignment"
	label   string // "Dana", "Family", "Assignment"
	verb    string // "create"
	done    string // "created"
	id      int64  // 0 for create
	subject string // what a create is about, e.g. the dana name
}

// key identifies the action for the in-flight guard. Actions on an existing
// record are keyed by its id. A create has no id yet, so its key is scoped to
// what is being created and to the signed-in user who asked for it.
func (m mutation) key(ctx context.Context) string {
	if m.id != 0 {
		return fmt.Sprintf("%s:%s:%d", m.entity, m.verb, m.id)
	}
	k := m.entity + ":" + m.verb
	if m.subject != "" {
		k += ":" + m.subject
	}
	if u, ok := auth.UserFromContext(ctx); ok && u.ID != "" {
		k += "@" + u.ID
	}
	return k
}

func (m mutation) successMessage() string {
	return m.label + " " + m.done + " successfully"
}

func (m mutation) failureMessage() string {
	return "Failed to " + m.verb + " " + m.entity
}

// claim marks key as in flight. The returned release must be called on every
// path.
func (c *Coordinator) claim(key string) (release func(), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[key]; busy {
		return nil, ErrInFlight
	}
	c.inflight[key] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}, nil
}

// InFlight reports whether key is currently claimed. Keys look like
// "dana:update:7" or "dana:create:gilanpasa@u-12".
func (c *Coordinator) InFlight(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[key]
	return busy
}

// isLocal reports errors that are decided without a remote failure: they get
// no toast and leave caches alone.
func isLocal(err error) bool {
	if _, ok := validators.AsFieldErrors(err); ok {
		return true
	}
	return errors.Is(err, assignments.ErrNotFound) || errors.Is(err, assignments.ErrNotYetDue)
}

// run executes call under the mutation protocol. changed=false from call
// means a successful no-op: nothing is refetched or announced. call may set
// m.id once a create has been assigned one.
//
// The remote call and the refetch that follows share one timeouts.Mutation
// deadline. Notifications and audit entries use the caller's ctx.
func (c *Coordinator) run(ctx context.Context, m *mutation, target refresher, call func(ctx context.Context) (changed bool, err error)) error {
	key := m.key(ctx)
	release, err := c.claim(key)
	if err != nil {
		c.metrics.mutation(m.entity, m.verb, outcomeInFlight)
		return err
	}
	defer release()

	callCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Mutation(), c.log, key)
	defer cancel()

	start := time.Now()
	changed, err := call(callCtx)
	c.metrics.observe(m.entity, m.verb, start)

	switch {
	case err != nil && isLocal(err):
		c.metrics.mutation(m.entity, m.verb, outcomeRejected)
		return err
	case err != nil:
		c.metrics.mutation(m.entity, m.verb, outcomeFailure)
		c.log.Warn("mutation failed",
			zap.String("entity", m.entity),
			zap.String("action", m.verb),
			zap.Int64("id", m.id),
			zap.Error(err))
		c.notifier.Notify(ctx, notify.Error(m.failureMessage()))
		if c.auditor != nil {
			c.auditor.Mutation(ctx, m.entity, m.done, m.id, err)
		}
		return fmt.Errorf("%s %s: %w: %w", m.verb, m.entity, ErrMutationFailed, err)
	case !changed:
		c.metrics.mutation(m.entity, m.verb, outcomeNoop)
		return nil
	}

	c.metrics.mutation(m.entity, m.verb, outcomeSuccess)
	if rerr := c.refresh(callCtx, target); rerr != nil {
		// The change went through; the next read will try again.
		target.Invalidate()
		c.log.Warn("refetch after mutation failed", zap.String("entity", m.entity), zap.Error(rerr))
	}
	c.notifier.Notify(ctx, notify.Success(m.successMessage()))
	if c.auditor != nil {
		c.auditor.Mutation(ctx, m.entity, m.done, m.id, nil)
	}
	return nil
}

// invalid records a validation rejection. No request is issued.
func (c *Coordinator) invalid(m *mutation, err error) error {
	c.metrics.mutation(m.entity, m.verb, outcomeInvalid)
	return err
}
