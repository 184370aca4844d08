package identitygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Client клиент внешнего сервиса проверки личности.
// Результат проверки приходит асинхронно на callback URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента identity gate
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// StartChallenge открывает проверку и возвращает URL, на который отправляется клиент
func (c *Client) StartChallenge(ctx context.Context, r domain.GateChallengeRequest) (*domain.GateChallenge, error) {
	payload, err := json.Marshal(ChallengeRequest{
		FlowID:      r.FlowID,
		HoldID:      r.HoldID,
		Email:       r.Email,
		Phone:       r.Phone,
		CallbackURL: r.CallbackURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/challenges", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Identity gate unreachable for flow=%s: %v", r.FlowID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	default:
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var challenge ChallengeResponse
	if err := json.NewDecoder(resp.Body).Decode(&challenge); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if challenge.URL == "" {
		return nil, fmt.Errorf("%w: empty challenge url", ErrInvalidResponse)
	}

	c.log.Info("Identity challenge %s opened for flow=%s", challenge.ChallengeID, r.FlowID)
	return &domain.GateChallenge{ID: challenge.ChallengeID, URL: challenge.URL}, nil
}
