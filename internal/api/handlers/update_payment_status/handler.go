package update_payment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	"github.com/m04kA/HS-BookingService/internal/service/bookings/models"
	recordPayment "github.com/m04kA/HS-BookingService/internal/usecase/record_payment"
)

const (
	msgMissingTransactionID = "отсутствует ID транзакции"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgPaymentNotFound      = "платеж не найден"
	msgTransition           = "недопустимая смена статуса платежа"
	msgOverPayment          = "сумма платежей превышает стоимость бронирования"
)

type Handler struct {
	useCase PaymentStatusUseCase
	logger  Logger
}

func NewHandler(useCase PaymentStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/internal/payments/{transactionId}
// Колбэк платежного шлюза о смене статуса транзакции.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]
	if transactionID == "" {
		h.logger.Warn("PATCH /internal/payments/{id} - Missing transaction ID")
		handlers.RespondBadRequest(w, msgMissingTransactionID)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /internal/payments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if msg := handlers.Validate(req); msg != "" {
		h.logger.Warn("PATCH /internal/payments/{id} - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	payment, err := h.useCase.UpdatePaymentStatus(r.Context(), req.ToUseCaseRequest(transactionID))
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrPaymentNotFound):
			h.logger.Warn("PATCH /internal/payments/{id} - Payment not found: transaction=%s", transactionID)
			handlers.RespondDomainError(w, err, msgPaymentNotFound)

		case errors.Is(err, recordPayment.ErrTransitionNotAllowed):
			h.logger.Warn("PATCH /internal/payments/{id} - Transition not allowed: transaction=%s, error=%v", transactionID, err)
			handlers.RespondDomainError(w, err, msgTransition)

		case errors.Is(err, recordPayment.ErrOverPayment):
			h.logger.Warn("PATCH /internal/payments/{id} - Over payment: transaction=%s", transactionID)
			handlers.RespondDomainError(w, err, msgOverPayment)

		default:
			h.logger.Error("PATCH /internal/payments/{id} - Failed to update payment: transaction=%s, error=%v", transactionID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("PATCH /internal/payments/{id} - Payment status updated: transaction=%s, status=%s",
		transactionID, payment.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainPayment(payment))
}
