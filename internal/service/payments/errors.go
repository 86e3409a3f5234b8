package payments

import (
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("payments.service: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не может видеть платежи бронирования
	ErrAccessDenied = fmt.Errorf("payments.service: access denied: %w", domain.ErrUnauthorized)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("payments.service: internal error: %w", domain.ErrStoreUnavailable)
)
