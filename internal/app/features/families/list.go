// internal/app/features/families/list.go
package families

import (
	"net/http"

	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/viewdata"
	"github.com/dalemusser/danahub/internal/domain/models"
)

type listData struct {
	viewdata.BaseVM
	Families []models.Family `json:"families"`
}

// List handles GET /families.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Coord.Families(r.Context())
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	data := listData{BaseVM: viewdata.NewBaseVM(r, h.Coord.Today()), Families: list}
	if data.Families == nil {
		data.Families = []models.Family{}
	}
	data.Notifications = h.Drain(w, r)
	shared.WriteJSON(w, data)
}
