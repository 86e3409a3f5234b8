package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	"github.com/m04kA/HS-BookingService/internal/api/middleware"
	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/internal/service/bookings/models"
	changeStatus "github.com/m04kA/HS-BookingService/internal/usecase/change_status"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgCannotCancel     = "бронирование не может быть отменено"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Короткая форма PATCH /bookings/{bookingId}/status со статусом CANCELLED.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	bookingID, bookingIDStr, ok := handlers.PathID(r, "bookingId")
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %q", bookingIDStr)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		BookingID: bookingID,
		ActorID:   userID,
		Status:    string(domain.StatusCancelled),
	})
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, changeStatus.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondDomainError(w, err, msgForbidden)

		case errors.Is(err, changeStatus.ErrTransitionNotAllowed):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
