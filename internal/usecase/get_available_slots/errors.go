package get_available_slots

import (
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому провайдеру
	ErrServiceNotFound = fmt.Errorf("get_available_slots: service not found: %w", domain.ErrNotFound)

	// ErrServiceUnavailable возвращается, когда услуга снята с продажи
	ErrServiceUnavailable = fmt.Errorf("get_available_slots: service is not available: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("get_available_slots: internal error: %w", domain.ErrStoreUnavailable)
)
