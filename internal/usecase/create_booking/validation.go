package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.SpecialInstructions != nil &&
		utf8.RuneCountInString(*req.SpecialInstructions) > domain.MaxSpecialInstructionsLength {
		return fmt.Errorf("%w: specialInstructions exceeds %d characters",
			ErrInvalidInput, domain.MaxSpecialInstructionsLength)
	}

	return nil
}

// validateService проверяет, что услугу можно забронировать на указанное время
func validateService(service *domain.Service, req *Request) error {
	if !service.IsAvailable {
		return ErrServiceUnavailable
	}

	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service id=%d has duration %d", ErrInvalidServiceDuration, service.ID, service.DurationMinutes)
	}

	if !domain.NewSlot(req.StartTime, service.DurationMinutes).FitsInDay() {
		return fmt.Errorf("%w: %s + %d min crosses midnight",
			ErrInvalidServiceDuration, req.StartTime, service.DurationMinutes)
	}

	return nil
}
