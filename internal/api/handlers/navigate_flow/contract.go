package navigate_flow

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type FlowService interface {
	Next(ctx context.Context, flowID string) (*models.FlowView, error)
	Back(ctx context.Context, flowID string) (*models.FlowView, error)
	JumpToReview(ctx context.Context, flowID string) (*models.FlowView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
