package load_slots

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type FlowService interface {
	RefreshSlots(ctx context.Context, flowID string) (*models.FlowView, error)
	FindNextAvailable(ctx context.Context, flowID string) (*models.FlowView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
