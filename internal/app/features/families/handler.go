// internal/app/features/families/handler.go
package families

import (
	"github.com/dalemusser/danahub/internal/app/coordinator"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler owns the family endpoints.
type Handler struct {
	Coord *coordinator.Coordinator
	shared.Responder
}

// NewHandler constructs a families Handler.
func NewHandler(co *coordinator.Coordinator, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Coord:     co,
		Responder: shared.Responder{Sessions: sm, ErrLog: errLog, Log: logger},
	}
}
