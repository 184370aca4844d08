package checkout_action

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type FlowService interface {
	Confirm(ctx context.Context, flowID string) (*models.FlowView, error)
	RetryGate(ctx context.Context, flowID string) (*models.FlowView, error)
	Finalize(ctx context.Context, flowID string) (*models.FlowView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
