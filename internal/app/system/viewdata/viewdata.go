// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/danahub/internal/app/system/authz"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"github.com/dalemusser/danahub/internal/domain/models"
)

// UserVM is the signed-in user as shown to the client.
type UserVM struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Role      authz.Role `json:"role"`
	RoleLabel string     `json:"roleLabel"`
	CanDelete bool       `json:"canDelete"`
}

// BaseVM contains the fields every danahub response carries.
// Embed it in feature-specific view models.
//
//	type listData struct {
//	    viewdata.BaseVM
//	    Assignments []row `json:"assignments"`
//	}
type BaseVM struct {
	User          *UserVM               `json:"user,omitempty"`
	Today         models.Date           `json:"today"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// NewBaseVM fills the user fields from the request context.
func NewBaseVM(r *http.Request, today models.Date) BaseVM {
	vm := BaseVM{Today: today}
	role, name, id, ok := authz.UserCtx(r)
	if ok {
		vm.User = &UserVM{
			ID:        id,
			Name:      name,
			Role:      role,
			RoleLabel: role.DisplayName(),
			CanDelete: authz.CanDelete(role),
		}
	}
	return vm
}
