package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// GetAvailability запрашивает слоты на один день
func (c *Client) GetAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.AvailableSlot, error) {
	params := url.Values{}
	params.Set("date", q.Date.Format(domain.DateFormat))
	params.Set("serviceId", q.ServiceID)
	for _, id := range q.ServiceIDs {
		params.Add("serviceIds", id)
	}
	params.Set("staffId", q.StaffID)
	params.Set("durationMinutes", strconv.Itoa(q.DurationMinutes))
	params.Set("bufferMinutes", strconv.Itoa(q.BufferMinutes))
	params.Set("minNoticeMinutes", strconv.Itoa(q.MinNoticeMinutes))
	params.Set("maxAdvanceDays", strconv.Itoa(q.MaxAdvanceDays))
	if q.LocationID != nil {
		params.Set("locationId", *q.LocationID)
	}

	path := fmt.Sprintf("/providers/%s/availability?%s", url.PathEscape(q.ProviderID), params.Encode())

	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: availability query rejected", ErrInvalidRequest)
	default:
		return nil, unexpectedStatus(resp)
	}

	var body AvailabilityResponse
	if err := decode(resp, &body); err != nil {
		return nil, err
	}

	slots := make([]domain.AvailableSlot, 0, len(body.Slots))
	for _, s := range body.Slots {
		slots = append(slots, domain.AvailableSlot{
			Start:       s.Start,
			End:         s.End,
			StaffID:     s.StaffID,
			IsAvailable: s.IsAvailable,
		})
	}
	return slots, nil
}
