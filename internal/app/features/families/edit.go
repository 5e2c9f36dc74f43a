// internal/app/features/families/edit.go
package families

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/danahub/internal/app/coordinator"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/authz"
	"github.com/dalemusser/danahub/internal/app/system/formutil"
	"github.com/dalemusser/danahub/internal/domain/models"
)

func bindFields(r *http.Request) (models.FamilyFields, error) {
	var in models.FamilyFields
	err := formutil.Bind(r, &in, func(f url.Values) {
		in.FamilyName = f.Get("familyName")
		in.Address = f.Get("address")
		in.Telephone = f.Get("telephone")
	})
	return in, err
}

// Create handles POST /families.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := bindFields(r)
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	r, rec := shared.Recording(r)
	f, err := h.Coord.CreateFamily(r.Context(), in)
	if err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusCreated, f, "/families")
}

// Update handles POST /families/{id}/edit.
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
	f, err := h.Coord.UpdateFamily(r.Context(), id, in)
	if err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusOK, f, "/families")
}

const deletePrompt = "Are you sure you want to delete this family?"

// Delete handles POST /families/{id}/delete and needs confirm=yes.
// Assignments that name the family keep their embedded copy.
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
	if err := h.Coord.DeleteFamily(r.Context(), id); err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusOK, nil, "/families")
}
