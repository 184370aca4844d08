package join_waitlist

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
	msgContactRequired    = "укажите имя и email или телефон"
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

// Handle POST /api/v1/flows/{flowId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req models.WaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flows/{id}/waitlist - Invalid request body: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /flows/{id}/waitlist - Validation failed: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgContactRequired)
		return
	}

	entry, err := h.service.JoinWaitlist(r.Context(), flowID, req)
	if err != nil {
		if errors.Is(err, flow.ErrWaitlistContact) {
			h.logger.Warn("POST /flows/{id}/waitlist - Contact missing: flow_id=%s", flowID)
			handlers.RespondBadRequest(w, msgContactRequired)
			return
		}
		handlers.RespondFlowFailure(w, h.logger, "POST /flows/{id}/waitlist", flowID, err)
		return
	}

	h.logger.Info("POST /flows/{id}/waitlist - Joined waitlist: flow_id=%s, entry_id=%s", flowID, entry.ID)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
