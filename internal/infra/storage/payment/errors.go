package payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = fmt.Errorf("payment.repository: payment not found: %w", domain.ErrNotFound)

	// ErrDuplicateTransaction возвращается при повторной записи transaction_id
	ErrDuplicateTransaction = errors.New("payment.repository: duplicate transaction id")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
