package identitygate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestStartChallenge(t *testing.T) {
	var got ChallengeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/challenges", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ChallengeResponse{ChallengeID: "c-1", URL: "https://gate.example/c-1"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	challenge, err := client.StartChallenge(context.Background(), domain.GateChallengeRequest{
		FlowID:      "f-1",
		HoldID:      ptr.Ptr("h-1"),
		Email:       "t@example.com",
		CallbackURL: "https://book.example/api/v1/flows/f-1/gate/callback",
	})
	require.NoError(t, err)

	assert.Equal(t, "c-1", challenge.ID)
	assert.Equal(t, "https://gate.example/c-1", challenge.URL)
	assert.Equal(t, "f-1", got.FlowID)
	require.NotNil(t, got.HoldID)
	assert.Equal(t, "h-1", *got.HoldID)
}

func TestStartChallenge_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "server error", status: http.StatusServiceUnavailable, want: ErrUnavailable},
		{name: "rejected", status: http.StatusBadRequest, want: ErrInvalidResponse},
		{name: "empty url", status: http.StatusOK, body: `{"challengeId":"c-1"}`, want: ErrInvalidResponse},
		{name: "broken body", status: http.StatusOK, body: `{`, want: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, time.Second, nopLogger{})
			_, err := client.StartChallenge(context.Background(), domain.GateChallengeRequest{FlowID: "f-1"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
