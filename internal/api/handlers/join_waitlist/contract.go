package join_waitlist

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type FlowService interface {
	JoinWaitlist(ctx context.Context, flowID string, req models.WaitlistRequest) (*models.WaitlistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
