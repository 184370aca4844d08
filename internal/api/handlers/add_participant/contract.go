package add_participant

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type FlowService interface {
	AddParticipant(ctx context.Context, flowID string, participant models.Participant) (*models.FlowView, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
