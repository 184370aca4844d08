package get_flow

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

// Handle GET /api/v1/flows/{flowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	view, err := h.service.Get(r.Context(), flowID)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, "GET /flows/{id}", flowID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}
