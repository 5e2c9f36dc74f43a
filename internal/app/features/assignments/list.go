// internal/app/features/assignments/list.go
package assignments

import (
	"net/http"

	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/authz"
	"github.com/dalemusser/danahub/internal/app/system/viewdata"
	"github.com/dalemusser/danahub/internal/domain/models"
)

type assignmentRow struct {
	Assignment models.Assignment `json:"assignment"`
	CanDelete  bool              `json:"canDelete"`
}

type listData struct {
	viewdata.BaseVM
	Query       string          `json:"query"`
	Total       int             `json:"total"`
	Assignments []assignmentRow `json:"assignments"`
}

// List handles GET /assignments?q=.
//
// q is matched literally (case-insensitive) against family, temple and dana
// names; the rows keep the collection's order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	all, err := h.Coord.Assignments(r.Context())
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	found := assignments.Filter(all, q)

	canDelete := authz.CanDeleteRequest(r)
	data := listData{
		BaseVM:      viewdata.NewBaseVM(r, h.Coord.Today()),
		Query:       q,
		Total:       len(all),
		Assignments: make([]assignmentRow, 0, len(found)),
	}
	for _, a := range found {
		data.Assignments = append(data.Assignments, assignmentRow{Assignment: a, CanDelete: canDelete})
	}
	data.Notifications = h.Drain(w, r)
	shared.WriteJSON(w, data)
}

type pairingRow struct {
	assignments.PairingView
	Confirmed int `json:"confirmed"`
	Shortfall int `json:"shortfall"`
}

type pairingsData struct {
	viewdata.BaseVM
	Pairings []pairingRow `json:"pairings"`
}

// Pairings handles GET /assignments/pairings.
func (h *Handler) Pairings(w http.ResponseWriter, r *http.Request) {
	views, err := h.Coord.Pairings(r.Context())
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	data := pairingsData{
		BaseVM:   viewdata.NewBaseVM(r, h.Coord.Today()),
		Pairings: make([]pairingRow, 0, len(views)),
	}
	for _, p := range views {
		data.Pairings = append(data.Pairings, pairingRow{PairingView: p, Confirmed: p.Confirmed(), Shortfall: p.Shortfall()})
	}
	shared.WriteJSON(w, data)
}
