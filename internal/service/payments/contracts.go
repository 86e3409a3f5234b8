package payments

import (
	"context"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error)
}

// UserDirectory источник пользователей
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для согласованного чтения
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
