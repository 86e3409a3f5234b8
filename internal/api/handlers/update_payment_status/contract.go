package update_payment_status

import (
	"context"

	"github.com/m04kA/HS-BookingService/internal/domain"
	recordPayment "github.com/m04kA/HS-BookingService/internal/usecase/record_payment"
)

type PaymentStatusUseCase interface {
	UpdatePaymentStatus(ctx context.Context, req *recordPayment.UpdateStatusRequest) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
