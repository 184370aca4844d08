package platform

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

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nopLogger{})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetCatalog(t *testing.T) {
	routes := map[string]interface{}{
		"/providers/p1/locations":  []Location{{ID: "loc-1", Name: "Main", IsPrimary: true, Kind: "salon"}},
		"/providers/p1/categories": []Category{{ID: "hair", Name: "Hair"}},
		"/providers/p1/offerings": []Offering{
			{ID: "cut", Title: "Cut", DurationMinutes: ptr.Ptr(45), Price: 300, BufferMinutes: ptr.Ptr(5)},
			{ID: "wash", Title: "Wash", Price: 100},
		},
		"/providers/p1/offerings/variants": map[string][]Offering{
			"cut": {{ID: "cut-long", Title: "Cut long", DurationMinutes: ptr.Ptr(75), Price: 400}},
		},
		"/providers/p1/packages": []Package{{ID: "pkg", Name: "Pack", Price: 350, MemberOfferingIDs: []string{"cut", "wash"}}},
		"/providers/p1/booking-settings": BookingSettings{
			StaffSelectionMode: "client_chooses",
			RequireAuthStep:    "before_time_selection",
			DepositPolicy:      &Deposit{Kind: "percentage", Amount: 20},
		},
		"/providers/p1/group-booking-settings": GroupBookingSettings{Enabled: true, MaxGroupSize: 4},
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, body)
	}))

	catalog, warnings, err := client.GetCatalog(context.Background(), "p1")
	require.NoError(t, err)

	// addons, staff, resources падают и деградируют в пустые списки
	assert.Len(t, warnings, 3)
	assert.Empty(t, catalog.Addons)
	assert.Empty(t, catalog.Staff)
	assert.Empty(t, catalog.Resources)

	require.Len(t, catalog.Offerings, 2)
	assert.Equal(t, 45, catalog.Offerings[0].DurationMinutes)
	assert.Equal(t, 5, catalog.Offerings[0].BufferMinutes)
	assert.Equal(t, domain.DefaultOfferingDurationMinutes, catalog.Offerings[1].DurationMinutes)
	assert.Equal(t, domain.DefaultOfferingBufferMinutes, catalog.Offerings[1].BufferMinutes)
	assert.Equal(t, domain.DefaultCurrency, catalog.Offerings[1].Currency)

	variant, ok := catalog.Offering("cut-long")
	require.True(t, ok)
	require.NotNil(t, variant.ParentOfferingID)
	assert.Equal(t, "cut", *variant.ParentOfferingID)

	assert.Equal(t, domain.StaffClientChooses, catalog.Settings.StaffSelectionMode)
	assert.Equal(t, domain.AuthBeforeTimeSelection, catalog.Settings.RequireAuthStep)
	assert.Equal(t, domain.DepositPercentage, catalog.Settings.DepositPolicy.Kind)
	assert.True(t, catalog.GroupSettings.Enabled)
	assert.Equal(t, 4, catalog.GroupSettings.MaxGroupSize)
}

func TestGetCatalog_AllPartsFail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	catalog, warnings, err := client.GetCatalog(context.Background(), "p1")
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Nil(t, catalog)
	assert.Len(t, warnings, catalogParts)
}

func TestBookingSettingsDefaults(t *testing.T) {
	settings := BookingSettings{StaffSelectionMode: "weird", RequireAuthStep: ""}.toDomain()

	assert.Equal(t, domain.StaffAnyoneDefault, settings.StaffSelectionMode)
	assert.Equal(t, domain.AuthAtCheckout, settings.RequireAuthStep)
	assert.Equal(t, domain.DepositNone, settings.DepositPolicy.Kind)
}

func TestGetAvailability(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	var gotQuery map[string][]string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/providers/p1/availability", r.URL.Path)
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, AvailabilityResponse{Slots: []Slot{
			{Start: start, End: start.Add(time.Hour), StaffID: ptr.Ptr("anna")},
			{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour), IsAvailable: ptr.Ptr(false)},
		}})
	}))

	slots, err := client.GetAvailability(context.Background(), domain.AvailabilityQuery{
		ProviderID:      "p1",
		Date:            start,
		ServiceID:       "cut",
		ServiceIDs:      []string{"cut", "wash"},
		StaffID:         domain.AnyStaff,
		DurationMinutes: 90,
		BufferMinutes:   5,
		LocationID:      ptr.Ptr("loc-1"),
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available())
	assert.False(t, slots[1].Available())

	assert.Equal(t, []string{"2026-03-10"}, gotQuery["date"])
	assert.Equal(t, []string{"cut", "wash"}, gotQuery["serviceIds"])
	assert.Equal(t, []string{"90"}, gotQuery["durationMinutes"])
	assert.Equal(t, []string{"loc-1"}, gotQuery["locationId"])
	assert.Equal(t, []string{"any"}, gotQuery["staffId"])
}

func TestGetAvailability_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "rejected", status: http.StatusBadRequest, want: ErrInvalidRequest},
		{name: "server error", status: http.StatusBadGateway, want: ErrUnavailable},
		{name: "unexpected", status: http.StatusTeapot, want: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.GetAvailability(context.Background(), domain.AvailabilityQuery{ProviderID: "p1"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetAvailability_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetAvailability(context.Background(), domain.AvailabilityQuery{ProviderID: "p1"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateHold(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	var got CreateHoldRequest
	var gotKey string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/holds", r.URL.Path)
		gotKey = r.Header.Get(IdempotencyKeyHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, HoldResponse{HoldID: "h-1", CreatedAt: start})
	}))

	hold, err := client.CreateHold(context.Background(), domain.HoldRequest{
		ProviderID:   "p1",
		Services:     []domain.HoldService{{OfferingID: "cut", DurationMinutes: 60, Price: 350}},
		Start:        start,
		End:          start.Add(time.Hour),
		LocationType: domain.VenueAtHome,
		Address:      &domain.Address{Line1: "1 Long St", City: "Cape Town"},
	}, "key-1")
	require.NoError(t, err)

	assert.Equal(t, "h-1", hold.ID)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "at_home", got.LocationType)
	assert.Nil(t, got.StaffID)
	require.NotNil(t, got.Address)
	assert.Equal(t, "Cape Town", got.Address.City)
	require.Len(t, got.Services, 1)
	assert.Equal(t, "cut", got.Services[0].OfferingID)
}

func TestCreateHold_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   interface{}
		want   error
	}{
		{name: "slot taken", status: http.StatusConflict, want: ErrSlotTaken},
		{name: "rejected", status: http.StatusUnprocessableEntity, want: ErrInvalidRequest},
		{name: "unavailable", status: http.StatusInternalServerError, want: ErrUnavailable},
		{name: "empty id", status: http.StatusCreated, body: HoldResponse{}, want: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.body != nil {
					writeJSON(w, tt.status, tt.body)
					return
				}
				w.WriteHeader(tt.status)
			}))

			_, err := client.CreateHold(context.Background(), domain.HoldRequest{ProviderID: "p1"}, "k")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCommitHold(t *testing.T) {
	var got CommitHoldRequest

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/holds/h-1/commit", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, CommitHoldResponse{BookingID: "b-1", Status: "confirmed"})
	}))

	confirmation, err := client.CommitHold(context.Background(), domain.CommitRequest{
		HoldID:     "h-1",
		Client:     domain.ClientIntake{FirstName: "Thandi", Email: "t@example.com"},
		Total:      400,
		DepositDue: 80,
		Currency:   "ZAR",
	})
	require.NoError(t, err)

	assert.Equal(t, "b-1", confirmation.BookingID)
	assert.Equal(t, "h-1", confirmation.HoldID)
	assert.Equal(t, "Thandi", got.Client.FirstName)
	assert.Equal(t, []string{}, got.AddonIDs)
	assert.Equal(t, 80.0, got.DepositDue)
}

func TestCommitHold_Expired(t *testing.T) {
	for _, status := range []int{http.StatusGone, http.StatusNotFound} {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := client.CommitHold(context.Background(), domain.CommitRequest{HoldID: "h-1"})
		assert.ErrorIs(t, err, ErrHoldExpired, "status %d", status)
	}
}

func TestJoinWaitlist(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var got WaitlistRequest

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/providers/p1/waitlist", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, WaitlistResponse{ID: "w-1", CreatedAt: created})
	}))

	entry, err := client.JoinWaitlist(context.Background(), domain.WaitlistRequest{
		ProviderID:    "p1",
		Name:          "Thandi",
		OfferingIDs:   []string{"cut"},
		PreferredDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "w-1", entry.ID)
	assert.Equal(t, "2026-03-12", got.PreferredDate)
	assert.Equal(t, []string{"cut"}, got.OfferingIDs)
}
