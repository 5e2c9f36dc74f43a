// internal/app/features/danas/handler.go
package danas

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/danahub/internal/app/coordinator"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/danahub/internal/app/system/authz"
	"github.com/dalemusser/danahub/internal/app/system/formutil"
	"github.com/dalemusser/danahub/internal/app/system/viewdata"
	"github.com/dalemusser/danahub/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Coord *coordinator.Coordinator
	shared.Responder
}

func NewHandler(co *coordinator.Coordinator, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Coord:     co,
		Responder: shared.Responder{Sessions: sm, ErrLog: errLog, Log: logger},
	}
}

type timeOption struct {
	Value models.DanaTime `json:"value"`
	Label string          `json:"label"`
}

type listData struct {
	viewdata.BaseVM
	Query string        `json:"query"`
	Danas []models.Dana `json:"danas"`
	Times []timeOption  `json:"times"`
}

// List handles GET /danas?q=, matching name and description.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	list, err := h.Coord.SearchDanas(r.Context(), q)
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, h.Coord.Today()),
		Query:  q,
		Danas:  list,
	}
	if data.Danas == nil {
		data.Danas = []models.Dana{}
	}
	for _, t := range models.DanaTimes {
		data.Times = append(data.Times, timeOption{Value: t, Label: t.Label()})
	}
	data.Notifications = h.Drain(w, r)
	shared.WriteJSON(w, data)
}

func bindFields(r *http.Request) (models.DanaFields, error) {
	var in models.DanaFields
	err := formutil.Bind(r, &in, func(f url.Values) {
		in.Name = f.Get("name")
		in.Description = f.Get("description")
		in.Time = models.DanaTime(f.Get("time"))
	})
	return in, err
}

// Create handles POST /danas.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := bindFields(r)
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	r, rec := shared.Recording(r)
	d, err := h.Coord.CreateDana(r.Context(), in)
	if err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusCreated, d, "/danas")
}

// Update handles POST /danas/{id}/edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.URLID(r, "id")
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	in, err := bindFields(r)
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	r, rec := shared.Recording(r)
	d, err := h.Coord.UpdateDana(r.Context(), id, in)
	if err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusOK, d, "/danas")
}

const deletePrompt = "Are you sure you want to delete this dana?"

// Delete handles POST /danas/{id}/delete. Like assignment deletes it needs
// confirm=yes; otherwise the reply is 409 with the prompt.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.URLID(r, "id")
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	if !authz.CanDeleteRequest(r) {
		h.Fail(w, r, nil, coordinator.ErrForbidden)
		return
	}
	if !formutil.Truthy(r.FormValue("confirm")) {
		h.Fail(w, r, nil, &uierrors.ConfirmationRequired{Prompt: deletePrompt})
		return
	}
	r, rec := shared.Recording(r)
	if err := h.Coord.DeleteDana(r.Context(), id); err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusOK, nil, "/danas")
}
