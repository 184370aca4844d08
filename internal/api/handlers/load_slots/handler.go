package load_slots

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

const msgStaleResult = "выбор изменился во время загрузки слотов, повторите запрос"

// Mode какой запрос слотов выполнить
type Mode string

const (
	// ModeRefresh слоты на выбранную дату
	ModeRefresh Mode = "refresh"
	// ModeNextAvailable ближайший день со свободными слотами
	ModeNextAvailable Mode = "next-available"
)

type Handler struct {
	service FlowService
	mode    Mode
	logger  Logger
}

func NewHandler(service FlowService, mode Mode, logger Logger) *Handler {
	return &Handler{
		service: service,
		mode:    mode,
		logger:  logger,
	}
}

// Handle POST /api/v1/flows/{flowId}/slots/{refresh|next-available}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]
	route := "POST /flows/{id}/slots/" + string(h.mode)

	view, err := h.load(r.Context(), flowID)
	if err != nil {
		if errors.Is(err, flow.ErrStaleState) && !errors.Is(err, flow.ErrDraftLocked) {
			h.logger.Warn("%s - Result superseded: flow_id=%s", route, flowID)
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{
				Error: msgStaleResult,
				Code:  handlers.CodeStaleState,
			})
			return
		}
		handlers.RespondFlowFailure(w, h.logger, route, flowID, err)
		return
	}

	slots := 0
	if view.Schedule != nil {
		slots = len(view.Schedule.Slots)
	}
	h.logger.Info("%s - Slots loaded: flow_id=%s, slots=%d", route, flowID, slots)
	handlers.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) load(ctx context.Context, flowID string) (*models.FlowView, error) {
	if h.mode == ModeNextAvailable {
		return h.service.FindNextAvailable(ctx, flowID)
	}
	return h.service.RefreshSlots(ctx, flowID)
}
