package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/HS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID          int64            // ID заказчика (из X-User-ID)
	ServiceID           int64            // ID услуги
	Date                time.Time        // Дата бронирования (без времени)
	StartTime           types.TimeString // Время начала (например, "10:00")
	SpecialInstructions *string          // Пожелания заказчика (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                  int64
	CustomerID          int64
	ProviderID          int64
	ServiceID           int64
	BookingDate         time.Time
	StartTime           types.TimeString
	DurationMinutes     int
	Status              string
	TotalAmount         decimal.Decimal
	SpecialInstructions *string

	// Денормализованные данные услуги
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
