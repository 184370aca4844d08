package navigate_flow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
	"github.com/m04kA/SMC-BookingFlow/internal/service/flow/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	called string
	err    error
}

func (f *fakeService) view(name, flowID string) (*models.FlowView, error) {
	f.called = name
	if f.err != nil {
		return nil, f.err
	}
	return &models.FlowView{FlowID: flowID, Step: name}, nil
}

func (f *fakeService) Next(_ context.Context, flowID string) (*models.FlowView, error) {
	return f.view("next", flowID)
}

func (f *fakeService) Back(_ context.Context, flowID string) (*models.FlowView, error) {
	return f.view("back", flowID)
}

func (f *fakeService) JumpToReview(_ context.Context, flowID string) (*models.FlowView, error) {
	return f.view("review", flowID)
}

func router(svc FlowService) *mux.Router {
	r := mux.NewRouter()
	for _, d := range []Direction{DirectionNext, DirectionBack, DirectionReview} {
		r.HandleFunc("/flows/{flowId}/steps/"+string(d), NewHandler(svc, d, nopLogger{}).Handle).Methods(http.MethodPost)
	}
	return r
}

func TestHandle_Directions(t *testing.T) {
	for _, d := range []Direction{DirectionNext, DirectionBack, DirectionReview} {
		t.Run(string(d), func(t *testing.T) {
			svc := &fakeService{}
			rec := httptest.NewRecorder()
			router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/flows/flow-1/steps/"+string(d), nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, string(d), svc.called)
		})
	}
}

func TestHandle_IncompleteStep(t *testing.T) {
	svc := &fakeService{err: flow.ErrValidation}
	rec := httptest.NewRecorder()
	router(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/flows/flow-1/steps/next", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
