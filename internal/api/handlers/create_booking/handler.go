package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	"github.com/m04kA/HS-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/HS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время начала"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgCustomerNotFound   = "заказчик не найден"
	msgNotCustomer        = "создавать бронирования могут только заказчики"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceUnavailable = "услуга недоступна для бронирования"
	msgInvalidDuration    = "услуга не помещается в выбранный день"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg := handlers.Validate(req); msg != "" {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%d, %s", userID, msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, service_id=%d, date=%s, time=%s",
				userID, req.ServiceID, req.BookingDate, req.StartTime)
			handlers.RespondDomainError(w, err, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: user_id=%d", userID)
			handlers.RespondDomainError(w, err, msgCustomerNotFound)

		case errors.Is(err, createBooking.ErrNotCustomer):
			h.logger.Warn("POST /bookings - Not a customer: user_id=%d", userID)
			handlers.RespondDomainError(w, err, msgNotCustomer)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondDomainError(w, err, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceUnavailable):
			h.logger.Warn("POST /bookings - Service unavailable: service_id=%d", req.ServiceID)
			handlers.RespondDomainError(w, err, msgServiceUnavailable)

		case errors.Is(err, createBooking.ErrInvalidServiceDuration):
			h.logger.Warn("POST /bookings - Invalid duration: service_id=%d, time=%s", req.ServiceID, req.StartTime)
			handlers.RespondDomainError(w, err, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondDomainError(w, err, "")

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, provider_id=%d",
		result.ID, userID, result.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
