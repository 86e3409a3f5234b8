package change_status

import (
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("change_status: booking not found: %w", domain.ErrNotFound)

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = fmt.Errorf("change_status: invalid status: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("change_status: invalid input data: %w", domain.ErrValidation)

	// ErrTransitionNotAllowed возвращается, когда переход отсутствует в графе статусов
	ErrTransitionNotAllowed = fmt.Errorf("change_status: transition not allowed: %w", domain.ErrInvalidTransition)

	// ErrAccessDenied возвращается, когда пользователь не может выполнить переход
	ErrAccessDenied = fmt.Errorf("change_status: access denied: %w", domain.ErrUnauthorized)

	// ErrPaymentIncomplete возвращается при попытке завершить неоплаченное бронирование
	ErrPaymentIncomplete = fmt.Errorf("change_status: booking is not paid in full: %w", domain.ErrPaymentIncomplete)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("change_status: internal error: %w", domain.ErrStoreUnavailable)
)
