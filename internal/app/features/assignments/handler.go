// internal/app/features/assignments/handler.go
package assignments

import (
	"github.com/dalemusser/danahub/internal/app/coordinator"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/shared"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler owns the assignment endpoints. Every change goes through the
// coordinator.
type Handler struct {
	Coord *coordinator.Coordinator
	shared.Responder
}

// NewHandler constructs an assignments Handler. sm may be nil in tests.
func NewHandler(co *coordinator.Coordinator, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Coord:     co,
		Responder: shared.Responder{Sessions: sm, ErrLog: errLog, Log: logger},
	}
}
