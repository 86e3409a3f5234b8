package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// UserDirectory источник пользователей (таблица users или UserService)
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// AvailabilityChecker интерфейс проверки занятости провайдера
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, providerID int64, date time.Time, start types.TimeString, durationMinutes int, excludeBookingID *int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики создания бронирований
type Metrics interface {
	BookingCreated()
	SlotConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
