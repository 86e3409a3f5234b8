package change_status

import (
	"context"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

// UserDirectory источник пользователей
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// PaymentChecker проверяет, оплачено ли бронирование полностью
type PaymentChecker interface {
	IsPaymentComplete(ctx context.Context, bookingID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики переходов статусов
type Metrics interface {
	StatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
