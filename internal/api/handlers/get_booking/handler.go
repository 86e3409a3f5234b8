package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	"github.com/m04kA/HS-BookingService/internal/api/middleware"
	"github.com/m04kA/HS-BookingService/internal/domain"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "нет доступа к бронированию"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование видят заказчик, назначенный исполнитель и администратор.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, raw, ok := handlers.PathID(r, "bookingId")
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %q", raw)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, actorID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondDomainError(w, err, msgNotFound)
		return
	case errors.Is(err, domain.ErrUnauthorized):
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, actor_id=%d", bookingID, actorID)
		handlers.RespondDomainError(w, err, msgForbidden)
		return
	default:
		h.logger.Error("GET /bookings/{id} - GetByID failed: booking_id=%d, kind=%s, error=%v",
			bookingID, domain.Kind(err), err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("GET /bookings/{id} - OK: booking_id=%d, actor_id=%d, status=%s",
		bookingID, actorID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
