package start_flow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	providerID string
	link       models.DeepLink
	err        error
}

func (f *fakeService) Start(_ context.Context, providerID string, link models.DeepLink) (*models.FlowView, error) {
	f.providerID = providerID
	f.link = link
	if f.err != nil {
		return nil, f.err
	}
	return &models.FlowView{FlowID: "flow-1", ProviderID: providerID, Step: "services"}, nil
}

func serve(svc FlowService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/providers/{providerId}/flows", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	return rec
}

func TestHandle_DeepLinkFromQuery(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/providers/salon-1/flows?serviceId=cut&date=2026-03-12&staffId=")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "salon-1", svc.providerID)
	require.NotNil(t, svc.link.ServiceID)
	assert.Equal(t, "cut", *svc.link.ServiceID)
	require.NotNil(t, svc.link.Date)
	assert.Equal(t, "2026-03-12", *svc.link.Date)
	assert.Nil(t, svc.link.StaffID, "empty query value is not a preselection")
	assert.Nil(t, svc.link.LocationID)

	var view models.FlowView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "flow-1", view.FlowID)
}

func TestHandle_CatalogUnavailable(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: offerings: timeout", flow.ErrCatalogUnavailable)}
	rec := serve(svc, "/providers/salon-1/flows")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, handlers.CodeCatalogUnavailable, body.Code)
	assert.Equal(t, msgCatalogUnavailable, body.Error)
}
