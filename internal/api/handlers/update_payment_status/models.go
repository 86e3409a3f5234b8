package update_payment_status

import recordPayment "github.com/m04kA/HS-BookingService/internal/usecase/record_payment"

// UpdatePaymentStatusRequest HTTP request model
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING SUCCEEDED FAILED REFUNDED"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdatePaymentStatusRequest) ToUseCaseRequest(transactionID string) *recordPayment.UpdateStatusRequest {
	return &recordPayment.UpdateStatusRequest{
		TransactionID: transactionID,
		Status:        r.Status,
	}
}
