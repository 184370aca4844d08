package toggle_addon

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

// Handle POST /api/v1/flows/{flowId}/addons/{addonId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	flowID := vars["flowId"]
	addonID := vars["addonId"]

	view, err := h.service.ToggleAddon(r.Context(), flowID, addonID)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, "POST /flows/{id}/addons/{addonId}/toggle", flowID, err)
		return
	}

	h.logger.Info("POST /flows/{id}/addons/{addonId}/toggle - Addon toggled: flow_id=%s, addon_id=%s, addons=%d",
		flowID, addonID, len(view.Draft.AddonIDs))
	handlers.RespondJSON(w, http.StatusOK, view)
}
