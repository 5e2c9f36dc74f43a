// internal/app/features/assignments/actions.go
package assignments

import (
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/authz"
	"github.com/dalemusser/danahub/internal/app/system/formutil"
	"github.com/dalemusser/danahub/internal/domain/models"
)

// Create handles POST /assignments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AssignmentInput
	err := formutil.Bind(r, &in, func(f url.Values) {
		in.TempleID = formutil.Int64(f.Get("templeId"))
		in.DanaID = formutil.Int64(f.Get("danaId"))
		in.FamilyID = formutil.Int64(f.Get("familyId"))
		in.MinNumberOfFamilies = int(formutil.Int64(f.Get("minNumberOfFamilies")))
		in.Date = strings.TrimSpace(f.Get("date"))
	})
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}

	r, rec := shared.Recording(r)
	a, err := h.Coord.CreateAssignment(r.Context(), in)
	if err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusCreated, a, "/assignments")
}

type confirmResult struct {
	Assignment models.Assignment `json:"assignment"`
	Changed    bool              `json:"changed"`
}

// Confirm handles POST /assignments/{id}/confirm. Confirming an assignment
// that is already confirmed succeeds quietly with changed=false.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.URLID(r, "id")
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}

	r, rec := shared.Recording(r)
	a, changed, err := h.Coord.ConfirmAssignment(r.Context(), id)
	if err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusOK, confirmResult{Assignment: a, Changed: changed}, "/assignments")
}

// Delete handles POST /assignments/{id}/delete.
//
// The caller must acknowledge the prompt with confirm=yes (query or form);
// without it the reply is 409 carrying the prompt text. Roles that may not
// delete get 403 whether or not they acknowledged.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.URLID(r, "id")
	if err != nil {
		h.Fail(w, r, nil, err)
		return
	}
	role := authz.RoleOf(r)

	if authz.CanDelete(role) && !formutil.Truthy(r.FormValue("confirm")) {
		prompt, err := h.Coord.DeletePrompt(r.Context(), id)
		if err != nil {
			h.Fail(w, r, nil, err)
			return
		}
		h.Fail(w, r, nil, &uierrors.ConfirmationRequired{Prompt: prompt})
		return
	}

	r, rec := shared.Recording(r)
	if err := h.Coord.DeleteAssignment(r.Context(), role, id); err != nil {
		h.Fail(w, r, rec, err)
		return
	}
	h.Done(w, r, rec, http.StatusOK, nil, "/assignments")
}
