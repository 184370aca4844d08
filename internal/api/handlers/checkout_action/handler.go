package checkout_action

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/integrations/platform"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
)

const (
	msgSlotLost    = "выбранное время больше недоступно, выберите другой слот"
	msgHoldExpired = "время брони истекло, выберите слот заново"
)

// Action шаг оформления брони
type Action string

const (
	ActionConfirm   Action = "confirm"
	ActionRetryGate Action = "gate/retry"
	ActionFinalize  Action = "finalize"
)

type Handler struct {
	service FlowService
	action  Action
	logger  Logger
}

func NewHandler(service FlowService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle POST /api/v1/flows/{flowId}/{confirm|gate/retry|finalize}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]
	route := "POST /flows/{id}/" + string(h.action)

	view, err := h.run(r.Context(), flowID)
	if err != nil {
		switch {
		case errors.Is(err, platform.ErrSlotTaken):
			h.logger.Warn("%s - Slot taken, back to schedule: flow_id=%s", route, flowID)
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{Error: msgSlotLost, Code: handlers.CodeBusiness})

		case errors.Is(err, hold_lifecycle.ErrHoldExpired):
			h.logger.Warn("%s - Hold expired, back to schedule: flow_id=%s", route, flowID)
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{Error: msgHoldExpired, Code: handlers.CodeBusiness})

		default:
			handlers.RespondFlowFailure(w, h.logger, route, flowID, err)
		}
		return
	}

	h.logger.Info("%s - Done: flow_id=%s, hold_state=%s, hold_id=%s",
		route, flowID, view.Hold.State, view.Hold.HoldID)
	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) run(ctx context.Context, flowID string) (*models.FlowView, error) {
	switch h.action {
	case ActionRetryGate:
		return h.service.RetryGate(ctx, flowID)
	case ActionFinalize:
		return h.service.Finalize(ctx, flowID)
	default:
		return h.service.Confirm(ctx, flowID)
	}
}

