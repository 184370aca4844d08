package update_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDraftLocked        = "запись подтверждается, изменения недоступны"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle PATCH /api/v1/flows/{flowId}/draft
// Отсутствующее поле не меняется, null сбрасывает значение.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var patch models.DraftPatch
	if err := handlers.DecodeJSON(r, &patch); err != nil {
		h.logger.Warn("PATCH /flows/{id}/draft - Invalid request body: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.service.ApplyPatch(r.Context(), flowID, patch)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrDraftLocked):
			h.logger.Warn("PATCH /flows/{id}/draft - Draft locked: flow_id=%s", flowID)
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{Error: msgDraftLocked, Code: handlers.CodeStaleState})

		case errors.Is(err, flow.ErrInvalidDate):
			h.logger.Warn("PATCH /flows/{id}/draft - Invalid date: flow_id=%s, error=%v", flowID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			handlers.RespondFlowFailure(w, h.logger, "PATCH /flows/{id}/draft", flowID, err)
		}
		return
	}

	h.logger.Info("PATCH /flows/{id}/draft - Draft updated: flow_id=%s, services=%d, total=%.2f %s",
		flowID, len(view.Draft.Services), view.Totals.Total, view.Totals.Currency)
	handlers.RespondJSON(w, http.StatusOK, view)
}
