package get_flow

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type FlowService interface {
	Get(ctx context.Context, flowID string) (*models.FlowView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
