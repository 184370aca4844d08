package resume_flow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
)

const (
	msgFlowIDRequired       = "не указан flowId"
	msgContinuationNotFound = "данные продолжения не найдены или уже использованы"
	msgHoldMismatch         = "ссылка относится к другой брони"
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

// Handle GET /api/v1/continuations/{holdId}?flowId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	holdID := mux.Vars(r)["holdId"]
	flowID := r.URL.Query().Get("flowId")
	if flowID == "" {
		h.logger.Warn("GET /continuations/{holdId} - Missing flowId: hold_id=%s", holdID)
		handlers.RespondBadRequest(w, msgFlowIDRequired)
		return
	}

	view, err := h.service.Resume(r.Context(), flowID, holdID)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrContinuationNotFound):
			h.logger.Warn("GET /continuations/{holdId} - Continuation not found: flow_id=%s, hold_id=%s", flowID, holdID)
			handlers.RespondNotFound(w, msgContinuationNotFound)

		case errors.Is(err, flow.ErrHoldMismatch):
			h.logger.Warn("GET /continuations/{holdId} - Hold mismatch: flow_id=%s, hold_id=%s", flowID, holdID)
			handlers.RespondError(w, http.StatusConflict, msgHoldMismatch)

		default:
			handlers.RespondFlowFailure(w, h.logger, "GET /continuations/{holdId}", flowID, err)
		}
		return
	}

	h.logger.Info("GET /continuations/{holdId} - Flow resumed: flow_id=%s, hold_id=%s, step=%s", flowID, holdID, view.Step)
	handlers.RespondJSON(w, http.StatusOK, view)
}
