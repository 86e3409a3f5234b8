package record_payment

import (
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("record_payment: booking not found: %w", domain.ErrNotFound)

	// ErrPaymentNotFound возвращается, когда платеж с transaction id не найден
	ErrPaymentNotFound = fmt.Errorf("record_payment: payment not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("record_payment: invalid input data: %w", domain.ErrValidation)

	// ErrBookingCancelled возвращается при попытке оплатить отмененное бронирование
	ErrBookingCancelled = fmt.Errorf("record_payment: booking is cancelled: %w", domain.ErrInvalidTransition)

	// ErrTransitionNotAllowed возвращается при недопустимой смене статуса платежа
	ErrTransitionNotAllowed = fmt.Errorf("record_payment: payment transition not allowed: %w", domain.ErrInvalidTransition)

	// ErrOverPayment возвращается, когда сумма успешных платежей превысит стоимость бронирования
	ErrOverPayment = fmt.Errorf("record_payment: payments exceed booking total: %w", domain.ErrOverPayment)

	// ErrDuplicateTransaction возвращается при повторной записи transaction id
	ErrDuplicateTransaction = fmt.Errorf("record_payment: transaction already recorded: %w", domain.ErrDuplicateTransaction)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("record_payment: internal error: %w", domain.ErrStoreUnavailable)
)
