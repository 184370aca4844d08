package abandon_flow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
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

// Handle DELETE /api/v1/flows/{flowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	if err := h.service.Abandon(r.Context(), flowID); err != nil {
		// сессия уже закрыта или истекла: результат тот же
		if errors.Is(err, flow.ErrSessionNotFound) {
			h.logger.Info("DELETE /flows/{id} - Flow already gone: flow_id=%s", flowID)
			handlers.RespondJSON(w, http.StatusNoContent, nil)
			return
		}
		handlers.RespondFlowFailure(w, h.logger, "DELETE /flows/{id}", flowID, err)
		return
	}

	h.logger.Info("DELETE /flows/{id} - Flow abandoned: flow_id=%s", flowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
