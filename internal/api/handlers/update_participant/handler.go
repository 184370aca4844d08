package update_participant

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

// Handle PUT /api/v1/flows/{flowId}/participants/{participantId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	flowID := vars["flowId"]
	participantID := vars["participantId"]

	var req models.Participant
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /flows/{id}/participants/{participantId} - Invalid request body: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /flows/{id}/participants/{participantId} - Validation failed: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidParticipant)
		return
	}

	view, err := h.service.UpdateParticipant(r.Context(), flowID, participantID, req)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, "PUT /flows/{id}/participants/{participantId}", flowID, err)
		return
	}

	h.logger.Info("PUT /flows/{id}/participants/{participantId} - Participant updated: flow_id=%s, participant_id=%s",
		flowID, participantID)
	handlers.RespondJSON(w, http.StatusOK, view)
}
