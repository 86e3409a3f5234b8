package record_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	"github.com/m04kA/HS-BookingService/internal/service/bookings/models"
	recordPayment "github.com/m04kA/HS-BookingService/internal/usecase/record_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "некорректная сумма платежа"
	msgNotFound           = "бронирование не найдено"
	msgBookingCancelled   = "бронирование отменено"
	msgOverPayment        = "сумма платежей превышает стоимость бронирования"
	msgDuplicate          = "транзакция уже зарегистрирована"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/bookings/{bookingId}/payments
// Вызывается платежным шлюзом, без X-User-ID.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, bookingIDStr, ok := handlers.PathID(r, "bookingId")
	if !ok {
		h.logger.Warn("POST /internal/bookings/{id}/payments - Invalid booking ID: %q", bookingIDStr)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/bookings/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if msg := handlers.Validate(req); msg != "" {
		h.logger.Warn("POST /internal/bookings/{id}/payments - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("POST /internal/bookings/{id}/payments - Invalid amount %q: %v", req.Amount, err)
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}

	payment, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrBookingNotFound):
			h.logger.Warn("POST /internal/bookings/{id}/payments - Booking not found: booking_id=%d", bookingID)
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, recordPayment.ErrBookingCancelled):
			h.logger.Warn("POST /internal/bookings/{id}/payments - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondDomainError(w, err, msgBookingCancelled)

		case errors.Is(err, recordPayment.ErrOverPayment):
			h.logger.Warn("POST /internal/bookings/{id}/payments - Over payment: booking_id=%d, amount=%s", bookingID, req.Amount)
			handlers.RespondDomainError(w, err, msgOverPayment)

		case errors.Is(err, recordPayment.ErrDuplicateTransaction):
			h.logger.Warn("POST /internal/bookings/{id}/payments - Duplicate transaction: %s", req.TransactionID)
			handlers.RespondDomainError(w, err, msgDuplicate)

		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /internal/bookings/{id}/payments - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("POST /internal/bookings/{id}/payments - Failed to record payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("POST /internal/bookings/{id}/payments - Payment recorded: payment_id=%d, booking_id=%d, status=%s",
		payment.ID, bookingID, payment.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainPayment(payment))
}
