package toggle_participant_service

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
)

const route = "POST /flows/{id}/participants/{participantId}/services/{offeringId}/toggle"

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

// Handle POST /api/v1/flows/{flowId}/participants/{participantId}/services/{offeringId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	flowID := vars["flowId"]
	participantID := vars["participantId"]
	offeringID := vars["offeringId"]

	view, err := h.service.ToggleParticipantService(r.Context(), flowID, participantID, offeringID)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, route, flowID, err)
		return
	}

	h.logger.Info("%s - Service toggled: flow_id=%s, participant_id=%s, offering_id=%s, duration=%d",
		route, flowID, participantID, offeringID, view.Totals.TotalDurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, view)
}
