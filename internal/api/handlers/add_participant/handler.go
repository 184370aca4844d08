package add_participant

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParticipant = "укажите имя участника и корректный email"
)

type Handler struct {
	service FlowService
	logger  Logger
}

func NewHandler(service FlowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/flows/{flowId}/participants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req models.Participant
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flows/{id}/participants - Invalid request body: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /flows/{id}/participants - Validation failed: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidParticipant)
		return
	}

	view, participantID, err := h.service.AddParticipant(r.Context(), flowID, req)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, "POST /flows/{id}/participants", flowID, err)
		return
	}

	h.logger.Info("POST /flows/{id}/participants - Participant added: flow_id=%s, participant_id=%s, participants=%d",
		flowID, participantID, len(view.Draft.Participants))
	handlers.RespondJSON(w, http.StatusCreated, &AddParticipantResponse{
		ParticipantID: participantID,
		Flow:          view,
	})
}
