package gate_callback

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type FlowService interface {
	CompleteGate(ctx context.Context, flowID, challengeID, outcome string) (*models.FlowView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
