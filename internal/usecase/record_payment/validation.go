package record_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// maxTransactionIDLength ограничение колонки transaction_id
const maxTransactionIDLength = 255

// validateRequest валидирует запрос и возвращает статус нового платежа
func validateRequest(req *Request) (domain.PaymentStatus, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if !req.Amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	// Не больше двух знаков после запятой
	if !req.Amount.Equal(req.Amount.Round(domain.MoneyScale)) {
		return "", fmt.Errorf("%w: amount must have at most %d decimal places", ErrInvalidInput, domain.MoneyScale)
	}

	if err := validateTransactionID(req.TransactionID); err != nil {
		return "", err
	}

	if req.Status == "" {
		return domain.PaymentSucceeded, nil
	}

	status, err := domain.ParsePaymentStatus(req.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Возврат оформляется сменой статуса существующего платежа
	if status == domain.PaymentRefunded {
		return "", fmt.Errorf("%w: new payment cannot be REFUNDED", ErrInvalidInput)
	}

	return status, nil
}

func validateTransactionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: transactionID is required", ErrInvalidInput)
	}
	if len(id) > maxTransactionIDLength {
		return fmt.Errorf("%w: transactionID exceeds %d characters", ErrInvalidInput, maxTransactionIDLength)
	}
	return nil
}
