package select_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, ожидается start в формате RFC3339"
	msgSlotNotOffered     = "выбранное время недоступно, обновите список слотов"
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

// Handle PUT /api/v1/flows/{flowId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req models.SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /flows/{id}/slot - Invalid request body: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /flows/{id}/slot - Validation failed: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.service.SelectSlot(r.Context(), flowID, req)
	if err != nil {
		if errors.Is(err, flow.ErrSlotNotOffered) {
			h.logger.Warn("PUT /flows/{id}/slot - Slot not offered: flow_id=%s, start=%s", flowID, req.Start)
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{Error: msgSlotNotOffered, Code: handlers.CodeValidation})
			return
		}
		handlers.RespondFlowFailure(w, h.logger, "PUT /flows/{id}/slot", flowID, err)
		return
	}

	h.logger.Info("PUT /flows/{id}/slot - Slot selected: flow_id=%s, start=%s", flowID, req.Start)
	handlers.RespondJSON(w, http.StatusOK, view)
}
