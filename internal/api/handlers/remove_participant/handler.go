package remove_participant

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
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

// Handle DELETE /api/v1/flows/{flowId}/participants/{participantId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	flowID := vars["flowId"]
	participantID := vars["participantId"]

	view, err := h.service.RemoveParticipant(r.Context(), flowID, participantID)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, "DELETE /flows/{id}/participants/{participantId}", flowID, err)
		return
	}

	h.logger.Info("DELETE /flows/{id}/participants/{participantId} - Participant removed: flow_id=%s, participant_id=%s",
		flowID, participantID)
	handlers.RespondJSON(w, http.StatusOK, view)
}
