package coordinator

import (
	"context"
	"strings"

	"github.com/dalemusser/danahub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/danahub/internal/app/system/validators"
	"github.com/dalemusser/danahub/internal/domain/models"
)

func danaMutation(verb, done string, id int64) *mutation {
	return &mutation{entity: "dana", label: "Dana", verb: verb, done: done, id: id}
}

func cleanDana(f models.DanaFields) models.DanaFields {
	f.Name = htmlsanitize.PlainText(f.Name)
	f.Description = htmlsanitize.PlainText(f.Description)
	if t, err := models.ParseDanaTime(string(f.Time)); err == nil {
		f.Time = t
	}
	return f
}

// CreateDana adds a dana through the API.
func (c *Coordinator) CreateDana(ctx context.Context, f models.DanaFields) (models.Dana, error) {
	m := danaMutation("create", "created", 0)
	f = cleanDana(f)
	m.subject = strings.ToLower(strings.TrimSpace(f.Name))
	if err := validators.Struct(f); err != nil {
		return models.Dana{}, c.invalid(m, err)
	}
	var out models.Dana
	err := c.run(ctx, m, c.danas, func(ctx context.Context) (bool, error) {
		d, err := c.api.CreateDana(ctx, f)
		if err != nil {
			return false, err
		}
		out, m.id = d, d.ID
		return true, nil
	})
	return out, err
}

// UpdateDana replaces the writable fields of dana id.
func (c *Coordinator) UpdateDana(ctx context.Context, id int64, f models.DanaFields) (models.Dana, error) {
	m := danaMutation("update", "updated", id)
	f = cleanDana(f)
	if err := validators.Struct(f); err != nil {
		return models.Dana{}, c.invalid(m, err)
	}
	var out models.Dana
	err := c.run(ctx, m, c.danas, func(ctx context.Context) (bool, error) {
		d, err := c.api.UpdateDana(ctx, id, f)
		out = d
		return err == nil, err
	})
	return out, err
}

// DeleteDana removes dana id.
func (c *Coordinator) DeleteDana(ctx context.Context, id int64) error {
	return c.run(ctx, danaMutation("delete", "deleted", id), c.danas, func(ctx context.Context) (bool, error) {
		err := c.api.DeleteDana(ctx, id)
		return err == nil, err
	})
}
