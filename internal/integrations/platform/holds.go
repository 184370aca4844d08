package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// IdempotencyKeyHeader заголовок, по которому сервис броней отбрасывает повторные запросы
const IdempotencyKeyHeader = "Idempotency-Key"

// CreateHold создает временную бронь слота
func (c *Client) CreateHold(ctx context.Context, req domain.HoldRequest, idempotencyKey string) (*domain.Hold, error) {
	services := make([]HoldServiceRequest, 0, len(req.Services))
	for _, s := range req.Services {
		services = append(services, HoldServiceRequest{
			OfferingID:      s.OfferingID,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	body := CreateHoldRequest{
		ProviderID:   req.ProviderID,
		StaffID:      req.StaffID,
		Services:     services,
		Start:        req.Start,
		End:          req.End,
		LocationType: string(req.LocationType),
		LocationID:   req.LocationID,
		Address:      toAddressPayload(req.Address),
		ResourceIDs:  req.ResourceIDs,
		Participants: toParticipantPayloads(req.Participants),
	}

	resp, err := c.do(ctx, http.MethodPost, "/holds", body, map[string]string{IdempotencyKeyHeader: idempotencyKey})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		// Продолжаем обработку (200 = повтор с тем же ключом)
	case http.StatusConflict:
		return nil, ErrSlotTaken
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: hold request rejected", ErrInvalidRequest)
	default:
		return nil, unexpectedStatus(resp)
	}

	var hold HoldResponse
	if err := decode(resp, &hold); err != nil {
		return nil, err
	}
	if hold.HoldID == "" {
		return nil, fmt.Errorf("%w: empty hold id", ErrInvalidResponse)
	}

	return &domain.Hold{ID: hold.HoldID, CreatedAt: hold.CreatedAt}, nil
}

// CommitHold превращает бронь в подтвержденную запись. 410/404 означают истекшую бронь.
func (c *Client) CommitHold(ctx context.Context, req domain.CommitRequest) (*domain.BookingConfirmation, error) {
	body := CommitHoldRequest{
		Client: ClientPayload{
			FirstName:       req.Client.FirstName,
			LastName:        req.Client.LastName,
			Email:           req.Client.Email,
			Phone:           req.Client.Phone,
			SpecialRequests: req.Client.SpecialRequests,
		},
		AddonIDs:          req.AddonIDs,
		FormResponses:     req.FormResponses,
		CustomFieldValues: req.CustomFieldValues,
		Participants:      toParticipantPayloads(req.Participants),
		Total:             req.Total,
		DepositDue:        req.DepositDue,
		Currency:          req.Currency,
	}
	if body.AddonIDs == nil {
		body.AddonIDs = []string{}
	}

	path := fmt.Sprintf("/holds/%s/commit", url.PathEscape(req.HoldID))
	resp, err := c.do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusGone, http.StatusNotFound:
		return nil, fmt.Errorf("%w: hold=%s status=%d", ErrHoldExpired, req.HoldID, resp.StatusCode)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: commit rejected", ErrInvalidRequest)
	default:
		return nil, unexpectedStatus(resp)
	}

	var commit CommitHoldResponse
	if err := decode(resp, &commit); err != nil {
		return nil, err
	}

	return &domain.BookingConfirmation{
		BookingID: commit.BookingID,
		HoldID:    req.HoldID,
		Status:    commit.Status,
	}, nil
}
