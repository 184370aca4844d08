package gate_callback

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCallback    = "нужны challengeId и outcome verified, not_verified или abandoned"
	msgUnauthorized       = "callback не подписан identity gate"
)

type Handler struct {
	service FlowService
	secret  string
	logger  Logger
}

// NewHandler создает обработчик callback. Пустой secret отключает проверку заголовка.
func NewHandler(service FlowService, secret string, logger Logger) *Handler {
	return &Handler{
		service: service,
		secret:  secret,
		logger:  logger,
	}
}

// Handle POST /api/v1/flows/{flowId}/gate/callback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(SecretHeader)), []byte(h.secret)) != 1 {
		h.logger.Warn("POST /flows/{id}/gate/callback - Unauthorized: flow_id=%s", flowID)
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req GateCallbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /flows/{id}/gate/callback - Invalid request body: flow_id=%s, error=%v", flowID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /flows/{id}/gate/callback - Invalid callback: flow_id=%s, challenge_id=%q, outcome=%q", flowID, req.ChallengeID, req.Outcome)
		handlers.RespondBadRequest(w, msgInvalidCallback)
		return
	}

	view, err := h.service.CompleteGate(r.Context(), flowID, req.ChallengeID, req.Outcome)
	if err != nil {
		handlers.RespondFlowFailure(w, h.logger, "POST /flows/{id}/gate/callback", flowID, err)
		return
	}

	h.logger.Info("POST /flows/{id}/gate/callback - Gate completed: flow_id=%s, challenge_id=%s, outcome=%s, hold_state=%s",
		flowID, req.ChallengeID, req.Outcome, view.Hold.State)
	handlers.RespondJSON(w, http.StatusOK, view)
}
