package geocoding

// Coordinates ответ сервиса геокодинга
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrorResponse модель ошибки от сервиса геокодинга
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
