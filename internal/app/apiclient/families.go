package apiclient

import (
	"context"
	"net/http"

	"github.com/dalemusser/danahub/internal/domain/models"
)

func (c *Client) ListFamilies(ctx context.Context) ([]models.Family, error) {
	var out []models.Family
	if err := c.do(ctx, http.MethodGet, "/families", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFamily(ctx context.Context, f models.FamilyFields) (models.Family, error) {
	var out models.Family
	err := c.do(ctx, http.MethodPost, "/families", f, &out)
	return out, err
}

func (c *Client) UpdateFamily(ctx context.Context, id int64, f models.FamilyFields) (models.Family, error) {
	body := models.Family{ID: id, FamilyName: f.FamilyName, Address: f.Address, Telephone: f.Telephone}
	var out models.Family
	if err := c.do(ctx, http.MethodPut, itemPath("families", id), body, &out); err != nil {
		return models.Family{}, err
	}
	if out.ID == 0 {
		out = body
	}
	return out, nil
}

func (c *Client) DeleteFamily(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("families", id), nil, nil)
}
