package add_participant

import "github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"

// AddParticipantResponse добавленный участник и новое состояние сессии
type AddParticipantResponse struct {
	ParticipantID string           `json:"participantId"`
	Flow          *models.FlowView `json:"flow"`
}
