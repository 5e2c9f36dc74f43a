package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/domain/models"
)

// Assignments is an assignments.Repository backed by the external API's
// /assignments resource.
type Assignments struct {
	c *Client
}

// NewAssignments returns the API-backed assignment repository.
func NewAssignments(c *Client) *Assignments {
	return &Assignments{c: c}
}

var _ assignments.Repository = (*Assignments)(nil)

func (r *Assignments) List(ctx context.Context) ([]models.Assignment, error) {
	var out []models.Assignment
	if err := r.c.do(ctx, http.MethodGet, "/assignments", nil, &out); err != nil {
		return nil, err
	}
	for _, a := range out {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("apiclient: invalid assignment from API: %w", err)
		}
	}
	return out, nil
}

func (r *Assignments) Get(ctx context.Context, id int64) (models.Assignment, error) {
	var out models.Assignment
	if err := r.c.do(ctx, http.MethodGet, itemPath("assignments", id), nil, &out); err != nil {
		return models.Assignment{}, notFound(err)
	}
	if err := out.Validate(); err != nil {
		return models.Assignment{}, fmt.Errorf("apiclient: invalid assignment from API: %w", err)
	}
	return out, nil
}

func (r *Assignments) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	var out models.Assignment
	if err := r.c.do(ctx, http.MethodPost, "/assignments", a, &out); err != nil {
		return models.Assignment{}, err
	}
	if out.ID == 0 {
		return models.Assignment{}, fmt.Errorf("apiclient: created assignment has no id")
	}
	return out, nil
}

func (r *Assignments) Update(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	var out models.Assignment
	if err := r.c.do(ctx, http.MethodPut, itemPath("assignments", a.ID), a, &out); err != nil {
		return models.Assignment{}, notFound(err)
	}
	if out.ID == 0 {
		out = a
	}
	return out, nil
}

func (r *Assignments) Delete(ctx context.Context, id int64) error {
	return notFound(r.c.do(ctx, http.MethodDelete, itemPath("assignments", id), nil, nil))
}

// notFound adds assignments.ErrNotFound to a 404 so the service can tell it
// apart from a transport failure.
func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", assignments.ErrNotFound, err)
	}
	return err
}
