package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// Client клиент сервиса геокодинга адресов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента геокодинга
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Geocode возвращает координаты адреса
func (c *Client) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	endpoint := fmt.Sprintf("%s/geocode?address=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil, ErrAddressNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var coords Coordinates
	if err := json.NewDecoder(resp.Body).Decode(&coords); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &coords, nil
}

// Enrich возвращает копию адреса с координатами.
// Любая ошибка геокодинга не фатальна: возвращается исходный адрес и ErrServiceDegraded.
func (c *Client) Enrich(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if !address.IsComplete() {
		return address, nil
	}

	line := address.String()
	c.log.Info("Geocoding address %q", line)

	coords, err := c.Geocode(ctx, line)
	if err != nil {
		if errors.Is(err, ErrAddressNotFound) {
			c.log.Warn("Address %q not recognized by geocoding", line)
		} else {
			c.log.Error("Geocoding unavailable, applying graceful degradation for %q: %v", line, err)
		}
		return address, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	enriched := *address
	enriched.Latitude = &coords.Latitude
	enriched.Longitude = &coords.Longitude
	return &enriched, nil
}
