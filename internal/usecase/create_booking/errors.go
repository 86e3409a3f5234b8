package create_booking

import (
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

var (
	// ErrCustomerNotFound возвращается, когда заказчик не найден
	ErrCustomerNotFound = fmt.Errorf("create_booking: customer not found: %w", domain.ErrNotFound)

	// ErrNotCustomer возвращается, когда бронирование создает пользователь без роли CUSTOMER
	ErrNotCustomer = fmt.Errorf("create_booking: only customers can create bookings: %w", domain.ErrUnauthorized)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("create_booking: service not found: %w", domain.ErrNotFound)

	// ErrServiceUnavailable возвращается, когда услуга снята с продажи
	ErrServiceUnavailable = fmt.Errorf("create_booking: service is not available: %w", domain.ErrValidation)

	// ErrInvalidServiceDuration возвращается, когда длительность услуги не позволяет забронировать слот
	ErrInvalidServiceDuration = fmt.Errorf("create_booking: invalid service duration: %w", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с другим бронированием провайдера
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot is not available: %w", domain.ErrSlotConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("create_booking: internal error: %w", domain.ErrStoreUnavailable)
)
