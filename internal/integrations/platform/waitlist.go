package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// JoinWaitlist отправляет заявку в лист ожидания провайдера
func (c *Client) JoinWaitlist(ctx context.Context, req domain.WaitlistRequest) (*domain.WaitlistEntry, error) {
	body := WaitlistRequest{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		OfferingIDs:    req.OfferingIDs,
		StaffID:        req.StaffID,
		PreferredDate:  req.PreferredDate.Format(domain.DateFormat),
		PreferredStart: req.PreferredStart,
		PreferredEnd:   req.PreferredEnd,
		Notes:          req.Notes,
	}

	path := fmt.Sprintf("/providers/%s/waitlist", url.PathEscape(req.ProviderID))
	resp, err := c.do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: waitlist request rejected", ErrInvalidRequest)
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, unexpectedStatus(resp)
	}

	var entry WaitlistResponse
	if err := decode(resp, &entry); err != nil {
		return nil, err
	}

	return &domain.WaitlistEntry{ID: entry.ID, CreatedAt: entry.CreatedAt}, nil
}
