package navigate_flow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

// Direction направление перехода по шагам
type Direction string

const (
	DirectionNext   Direction = "next"
	DirectionBack   Direction = "back"
	DirectionReview Direction = "review"
)

type Handler struct {
	service   FlowService
	direction Direction
	logger    Logger
}

func NewHandler(service FlowService, direction Direction, logger Logger) *Handler {
	return &Handler{
		service:   service,
		direction: direction,
		logger:    logger,
	}
}

// Handle POST /api/v1/flows/{flowId}/steps/{next|back|review}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]
	route := fmt.Sprintf("POST /flows/{id}/steps/%s", h.direction)

	view, err := h.move(r.Context(), flowID)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, route, flowID, err)
		return
	}

	h.logger.Info("%s - Step changed: flow_id=%s, step=%s", route, flowID, view.Step)
	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) move(ctx context.Context, flowID string) (*models.FlowView, error) {
	switch h.direction {
	case DirectionBack:
		return h.service.Back(ctx, flowID)
	case DirectionReview:
		return h.service.JumpToReview(ctx, flowID)
	default:
		return h.service.Next(ctx, flowID)
	}
}
