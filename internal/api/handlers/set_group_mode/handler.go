package set_group_mode

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса, ожидается {\"enabled\": true|false}"

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

// Handle PUT /api/v1/flows/{flowId}/group
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req SetGroupModeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /flows/{id}/group - Invalid request body: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /flows/{id}/group - Validation failed: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.service.SetGroupMode(r.Context(), flowID, *req.Enabled)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, "PUT /flows/{id}/group", flowID, err)
		return
	}

	h.logger.Info("PUT /flows/{id}/group - Group mode set: flow_id=%s, enabled=%t", flowID, *req.Enabled)
	handlers.RespondJSON(w, http.StatusOK, view)
}
