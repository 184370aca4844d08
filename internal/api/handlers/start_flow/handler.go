package start_flow

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgCatalogUnavailable = "не удалось загрузить каталог провайдера, повторите попытку"
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

// Handle POST /api/v1/providers/{providerId}/flows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		h.logger.Warn("POST /providers/{id}/flows - Empty provider ID")
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	link := DeepLinkFromQuery(r.URL.Query())

	view, err := h.service.Start(r.Context(), providerID, link)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrCatalogUnavailable):
			h.logger.Warn("POST /providers/{id}/flows - Catalog unavailable: provider_id=%s, error=%v", providerID, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.ErrorResponse{
				Error: msgCatalogUnavailable,
				Code:  handlers.CodeCatalogUnavailable,
			})

		default:
			h.logger.Error("POST /providers/{id}/flows - Failed to start flow: provider_id=%s, error=%v", providerID, err)
			handlers.RespondFlowError(w, err)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/flows - Flow started: flow_id=%s, provider_id=%s, step=%s",
		view.FlowID, providerID, view.Step)
	handlers.RespondJSON(w, http.StatusCreated, view)
}
