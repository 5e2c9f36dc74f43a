package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/danahub/internal/domain/models"
)

func (c *Client) ListDanas(ctx context.Context) ([]models.Dana, error) {
	var out []models.Dana
	if err := c.do(ctx, http.MethodGet, "/danas", nil, &out); err != nil {
		return nil, err
	}
	for _, d := range out {
		if d.Time != "" && !d.Time.Valid() {
			return nil, fmt.Errorf("apiclient: dana %d has unknown time %q", d.ID, d.Time)
		}
	}
	return out, nil
}

func (c *Client) CreateDana(ctx context.Context, f models.DanaFields) (models.Dana, error) {
	var out models.Dana
	err := c.do(ctx, http.MethodPost, "/danas", f, &out)
	return out, err
}

func (c *Client) UpdateDana(ctx context.Context, id int64, f models.DanaFields) (models.Dana, error) {
	body := models.Dana{ID: id, Name: f.Name, Description: f.Description, Time: f.Time}
	var out models.Dana
	if err := c.do(ctx, http.MethodPut, itemPath("danas", id), body, &out); err != nil {
		return models.Dana{}, err
	}
	if out.ID == 0 {
		out = body
	}
	return out, nil
}

func (c *Client) DeleteDana(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("danas", id), nil, nil)
}
