package record_payment

import (
	"github.com/shopspring/decimal"

	recordPayment "github.com/m04kA/HS-BookingService/internal/usecase/record_payment"
)

// RecordPaymentRequest HTTP request model. Сумма передается строкой, чтобы не терять точность.
type RecordPaymentRequest struct {
	Amount        string `json:"amount" validate:"required"`                                           // "25.00"
	TransactionID string `json:"transactionId" validate:"required,max=255"`                            // ID транзакции шлюза
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=PENDING SUCCEEDED FAILED"` // по умолчанию SUCCEEDED
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecordPaymentRequest) ToUseCaseRequest(bookingID int64) (*recordPayment.Request, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, err
	}

	return &recordPayment.Request{
		BookingID:     bookingID,
		Amount:        amount,
		TransactionID: r.TransactionID,
		Status:        r.Status,
	}, nil
}
