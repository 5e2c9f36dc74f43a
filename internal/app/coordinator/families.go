package coordinator

import (
	"context"
	"strings"

	"github.com/dalemusser/danahub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/danahub/internal/app/system/validators"
	"github.com/dalemusser/danahub/internal/domain/models"
)

func familyMutation(verb, done string, id int64) *mutation {
	return &mutation{entity: "family", label: "Family", verb: verb, done: done, id: id}
}

func cleanFamily(f models.FamilyFields) models.FamilyFields {
	f.FamilyName = htmlsanitize.PlainText(f.FamilyName)
	f.Address = htmlsanitize.PlainText(f.Address)
	f.Telephone = htmlsanitize.PlainText(f.Telephone)
	return f
}

// CreateFamily adds a family through the API.
func (c *Coordinator) CreateFamily(ctx context.Context, f models.FamilyFields) (models.Family, error) {
	m := familyMutation("create", "created", 0)
	f = cleanFamily(f)
	m.subject = strings.ToLower(strings.TrimSpace(f.FamilyName))
	if err := validators.Struct(f); err != nil {
		return models.Family{}, c.invalid(m, err)
	}
	var out models.Family
	err := c.run(ctx, m, c.families, func(ctx context.Context) (bool, error) {
		fam, err := c.api.CreateFamily(ctx, f)
		if err != nil {
			return false, err
		}
		out, m.id = fam, fam.ID
		return true, nil
	})
	return out, err
}

// UpdateFamily replaces the writable fields of family id. Assignments keep
// the family snapshot they were created with until the assignment cache is
// next refreshed.
func (c *Coordinator) UpdateFamily(ctx context.Context, id int64, f models.FamilyFields) (models.Family, error) {
	m := familyMutation("update", "updated", id)
	f = cleanFamily(f)
	if err := validators.Struct(f); err != nil {
		return models.Family{}, c.invalid(m, err)
	}
	var out models.Family
	err := c.run(ctx, m, c.families, func(ctx context.Context) (bool, error) {
		fam, err := c.api.UpdateFamily(ctx, id, f)
		out = fam
		return err == nil, err
	})
	return out, err
}

// DeleteFamily removes family id.
func (c *Coordinator) DeleteFamily(ctx context.Context, id int64) error {
	return c.run(ctx, familyMutation("delete", "deleted", id), c.families, func(ctx context.Context) (bool, error) {
		err := c.api.DeleteFamily(ctx, id)
		return err == nil, err
	})
}
