package identitygate

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity gate client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identity gate client: invalid response")

	// ErrUnavailable сервис проверки личности недоступен
	ErrUnavailable = errors.New("identity gate client: service unavailable")
)
