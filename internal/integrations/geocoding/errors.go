package geocoding

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("geocoding client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("geocoding client: invalid response")

	// ErrAddressNotFound адрес не удалось распознать
	ErrAddressNotFound = errors.New("geocoding client: address not found")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Адрес остается без координат, запись продолжается.
	ErrServiceDegraded = errors.New("geocoding unavailable: graceful degradation applied")
)
