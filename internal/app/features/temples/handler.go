// internal/app/features/temples/handler.go
package temples

import (
	"net/http"

	"github.com/dalemusser/danahub/internal/app/coordinator"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/danahub/internal/app/system/viewdata"
	"github.com/dalemusser/danahub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the read-only temple reference data.
type Handler struct {
	Coord *coordinator.Coordinator
	shared.Responder
}

func NewHandler(co *coordinator.Coordinator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Coord: co, Responder: shared.Responder{ErrLog: errLog, Log: logger}}
}

type listData struct {
	viewdata.BaseVM
	Temples []models.Temple `json:"temples"`
}

// List handles GET /temples.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Coord.Temples(r.Context())
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	data := listData{BaseVM: viewdata.NewBaseVM(r, h.Coord.Today()), Temples: list}
	if data.Temples == nil {
		data.Temples = []models.Temple{}
	}
	shared.WriteJSON(w, data)
}

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.List)
	return r
}
