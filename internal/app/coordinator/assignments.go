package coordinator

import (
	"context"
	"fmt"

	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/app/system/authz"
	"github.com/dalemusser/danahub/internal/app/system/validators"
	"github.com/dalemusser/danahub/internal/domain/models"
)

const deletePrompt = "Are you sure you want to delete this assignment for %s? This action cannot be undone."

func assignmentMutation(verb, done string, id int64) *mutation {
	return &mutation{entity: "assignment", label: "Assignment", verb: verb, done: done, id: id}
}

// CreateAssignment schedules a family for a temple-dana pairing. The temple,
// dana and family are resolved from the reference caches; unknown ids come
// back as field errors. A zero quota inherits the pairing's existing one.
func (c *Coordinator) CreateAssignment(ctx context.Context, in models.AssignmentInput) (models.Assignment, error) {
	m := assignmentMutation("create", "created", 0)
	if err := validators.Struct(in); err != nil {
		return models.Assignment{}, c.invalid(m, err)
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		fe := &validators.FieldErrors{}
		fe.Add("date", "must be a date (YYYY-MM-DD)")
		return models.Assignment{}, c.invalid(m, fe)
	}
	m.subject = fmt.Sprintf("%d/%d/%d/%s", in.TempleID, in.DanaID, in.FamilyID, date)

	var out models.Assignment
	err = c.run(ctx, m, c.assignments, func(ctx context.Context) (bool, error) {
		a, err := c.resolve(ctx, in, date)
		if err != nil {
			return false, err
		}
		created, err := c.svc.Create(ctx, a)
		if err != nil {
			return false, err
		}
		out, m.id = created, created.ID
		return true, nil
	})
	return out, err
}

func (c *Coordinator) resolve(ctx context.Context, in models.AssignmentInput, date models.Date) (models.Assignment, error) {
	temples, err := c.temples.Get(ctx)
	if err != nil {
		return models.Assignment{}, err
	}
	danas, err := c.danas.Get(ctx)
	if err != nil {
		return models.Assignment{}, err
	}
	families, err := c.families.Get(ctx)
	if err != nil {
		return models.Assignment{}, err
	}

	a := models.Assignment{Date: date}
	fe := &validators.FieldErrors{}
	if t, ok := findByID(temples, in.TempleID, func(t models.Temple) int64 { return t.ID }); ok {
		a.TempleDana.Temple = t
	} else {
		fe.Add("templeId", "unknown temple")
	}
	if d, ok := findByID(danas, in.DanaID, func(d models.Dana) int64 { return d.ID }); ok {
		a.TempleDana.Dana = d
	} else {
		fe.Add("danaId", "unknown dana")
	}
	if f, ok := findByID(families, in.FamilyID, func(f models.Family) int64 { return f.ID }); ok {
		a.Family = f
	} else {
		fe.Add("familyId", "unknown family")
	}
	if err := fe.Err(); err != nil {
		return models.Assignment{}, err
	}

	a.TempleDana.MinNumberOfFamilies = in.MinNumberOfFamilies
	if in.MinNumberOfFamilies == 0 {
		existing, err := c.assignments.Get(ctx)
		if err != nil {
			return models.Assignment{}, err
		}
		key := a.TempleDana.Key()
		for _, e := range existing {
			if e.TempleDana.Key() == key {
				a.TempleDana.MinNumberOfFamilies = e.TempleDana.MinNumberOfFamilies
				break
			}
		}
	}
	return a, nil
}

func findByID[T any](list []T, id int64, idOf func(T) int64) (T, bool) {
	for _, x := range list {
		if idOf(x) == id {
			return x, true
		}
	}
	var zero T
	return zero, false
}

// ConfirmAssignment moves assignment id to Confirmed(today). Confirming a
// confirmed assignment succeeds with changed=false and announces nothing.
func (c *Coordinator) ConfirmAssignment(ctx context.Context, id int64) (models.Assignment, bool, error) {
	var (
		out     models.Assignment
		changed bool
	)
	err := c.run(ctx, assignmentMutation("confirm", "confirmed", id), c.assignments, func(ctx context.Context) (bool, error) {
		a, ch, err := c.svc.Confirm(ctx, id)
		out, changed = a, ch
		return ch, err
	})
	if err != nil {
		return models.Assignment{}, false, err
	}
	return out, changed, nil
}

// DeleteAssignment removes assignment id. role must pass authz.CanDelete;
// acknowledging the prompt is the caller's job.
func (c *Coordinator) DeleteAssignment(ctx context.Context, role authz.Role, id int64) error {
	m := assignmentMutation("delete", "deleted", id)
	if !authz.CanDelete(role) {
		c.metrics.mutation(m.entity, m.verb, outcomeRejected)
		return ErrForbidden
	}
	return c.run(ctx, m, c.assignments, func(ctx context.Context) (bool, error) {
		err := c.svc.Delete(ctx, id)
		return err == nil, err
	})
}

// DeletePrompt is the confirmation question shown before deleting
// assignment id.
func (c *Coordinator) DeletePrompt(ctx context.Context, id int64) (string, error) {
	list, err := c.assignments.Get(ctx)
	if err != nil {
		return "", err
	}
	a, err := assignments.Find(list, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(deletePrompt, a.Family.FamilyName), nil
}
