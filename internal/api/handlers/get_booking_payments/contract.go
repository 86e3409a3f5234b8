package get_booking_payments

import (
	"context"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

type PaymentService interface {
	GetBookingPayments(ctx context.Context, bookingID, actorID int64) ([]*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
