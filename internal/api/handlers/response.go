package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

const (
	// CodeUnauthenticated код ответа при отсутствии X-User-ID
	CodeUnauthenticated = "Unauthenticated"

	msgInternalError = "внутренняя ошибка сервера"
	maxBodyBytes     = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var kindStatus = map[string]int{
	domain.KindNotFound:             http.StatusNotFound,
	domain.KindUnauthorized:         http.StatusForbidden,
	domain.KindValidation:           http.StatusBadRequest,
	domain.KindSlotConflict:         http.StatusConflict,
	domain.KindInvalidTransition:    http.StatusConflict,
	domain.KindDuplicateTransaction: http.StatusConflict,
	domain.KindPaymentIncomplete:    http.StatusUnprocessableEntity,
	domain.KindOverPayment:          http.StatusUnprocessableEntity,
	domain.KindStoreUnavailable:     http.StatusServiceUnavailable,
}

var kindMessage = map[string]string{
	domain.KindNotFound:             "ресурс не найден",
	domain.KindUnauthorized:         "недостаточно прав для выполнения операции",
	domain.KindValidation:           "некорректные данные запроса",
	domain.KindSlotConflict:         "выбранный временной слот недоступен",
	domain.KindInvalidTransition:    "переход в указанный статус невозможен",
	domain.KindDuplicateTransaction: "транзакция уже зарегистрирована",
	domain.KindPaymentIncomplete:    "бронирование оплачено не полностью",
	domain.KindOverPayment:          "сумма платежей превышает стоимость бронирования",
	domain.KindStoreUnavailable:     "хранилище временно недоступно",
}

// StatusFor возвращает HTTP статус для ошибки ядра бронирования
func StatusFor(err error) int {
	if status, ok := kindStatus[domain.Kind(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ошибку с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondDomainError отправляет ошибку ядра: статус и код берутся из вида ошибки.
// Пустое message заменяется сообщением по умолчанию для вида.
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	kind := domain.Kind(err)
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return
	}
	if message == "" {
		message = kindMessage[kind]
	}
	RespondError(w, status, kind, message)
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, domain.KindValidation, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthenticated, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, domain.KindUnauthorized, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, domain.KindNotFound, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, domain.KindInternal, msgInternalError)
}

// DecodeJSON читает тело запроса в v, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
