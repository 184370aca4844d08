package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingFlow/internal/service/flow"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgValidation         = "некорректные данные запроса"
	msgSessionNotFound    = "сессия записи не найдена или истекла"
	msgBusiness           = "операция отклонена"
	msgStaleState         = "операция недоступна в текущем состоянии записи"
	msgCatalogUnavailable = "каталог провайдера временно недоступен"
	msgTransient          = "сервис временно недоступен, повторите попытку"
)

// Коды ошибок в ответе. UI по ним решает, показывать ли кнопку повтора.
const (
	CodeValidation         = "validation"
	CodeSessionNotFound    = "session_not_found"
	CodeBusiness           = "business"
	CodeStaleState         = "stale_state"
	CodeCatalogUnavailable = "catalog_unavailable"
	CodeTransient          = "transient"
	CodeInternal           = "internal"
)

var validate = validator.New()

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// Validate проверяет теги validate у модели запроса
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// RespondJSON пишет JSON ответ. data == nil означает пустое тело.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с заданным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternalError, Code: CodeInternal})
}

// FlowErrorStatus возвращает HTTP статус и код для ошибки сервиса записи
func FlowErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, flow.ErrSessionNotFound):
		return http.StatusNotFound, CodeSessionNotFound
	case errors.Is(err, flow.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, flow.ErrBusiness):
		return http.StatusUnprocessableEntity, CodeBusiness
	case errors.Is(err, flow.ErrStaleState):
		return http.StatusConflict, CodeStaleState
	case errors.Is(err, flow.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, CodeCatalogUnavailable
	case errors.Is(err, flow.ErrTransient):
		return http.StatusServiceUnavailable, CodeTransient
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// RespondFlowError пишет ошибку сервиса записи. details заполняется только для 4xx.
func RespondFlowError(w http.ResponseWriter, err error) {
	status, code := FlowErrorStatus(err)
	resp := ErrorResponse{Error: flowMessage(code), Code: code}
	if status < http.StatusInternalServerError {
		resp.Details = err.Error()
	}
	RespondJSON(w, status, resp)
}

// IsServerError true для ошибок, которые логируются как Error
func IsServerError(err error) bool {
	status, _ := FlowErrorStatus(err)
	return status >= http.StatusInternalServerError
}

// ErrorLogger логгер для RespondFlowFailure
type ErrorLogger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondFlowFailure логирует и пишет ошибку сервиса записи
func RespondFlowFailure(w http.ResponseWriter, log ErrorLogger, route, flowID string, err error) {
	if IsServerError(err) {
		log.Error("%s - Failed: flow_id=%s, error=%v", route, flowID, err)
	} else {
		log.Warn("%s - Rejected: flow_id=%s, error=%v", route, flowID, err)
	}
	RespondFlowError(w, err)
}

func flowMessage(code string) string {
	switch code {
	case CodeValidation:
		return msgValidation
	case CodeSessionNotFound:
		return msgSessionNotFound
	case CodeBusiness:
		return msgBusiness
	case CodeStaleState:
		return msgStaleState
	case CodeCatalogUnavailable:
		return msgCatalogUnavailable
	case CodeTransient:
		return msgTransient
	default:
		return msgInternalError
	}
}
