package get_available_slots

import (
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов провайдера под услугу
type Request struct {
	ProviderID int64     // ID провайдера
	ServiceID  int64     // ID услуги провайдера
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со слотами на день
type Response struct {
	Date            time.Time     // Дата, на которую запрашивались слоты
	ProviderID      int64         // ID провайдера
	ServiceID       int64         // ID услуги
	DurationMinutes int           // Длительность услуги
	BusySlots       []domain.Slot // Занятые интервалы провайдера
	Slots           []Slot        // Кандидаты на начало бронирования
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Слот не пересекается с занятыми интервалами
}
