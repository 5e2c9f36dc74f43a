package apiclient

import (
	"context"
	"net/http"

	"github.com/dalemusser/danahub/internal/domain/models"
)

// ListTemples returns the read-only temple reference data.
func (c *Client) ListTemples(ctx context.Context) ([]models.Temple, error) {
	var out []models.Temple
	if err := c.do(ctx, http.MethodGet, "/temples", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
