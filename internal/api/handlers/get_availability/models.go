package get_availability

import (
	"github.com/m04kA/HS-BookingService/internal/domain"
)

// AvailabilityQuery query параметры запроса
type AvailabilityQuery struct {
	Date     string `json:"date" validate:"required,date"`
	Time     string `json:"time" validate:"required_with=Duration,omitempty,hhmm"`
	Duration int    `json:"duration" validate:"required_with=Time,omitempty,gt=0"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ProviderID  int64          `json:"providerId"`
	Date        string         `json:"date"`
	BusySlots   []BusySlot     `json:"busySlots"`
	Requested   *RequestedSlot `json:"requested,omitempty"`
	IsAvailable *bool          `json:"isAvailable,omitempty"`
}

// BusySlot занятый интервал [start, end)
type BusySlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RequestedSlot интервал, доступность которого проверялась
type RequestedSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromDomainSlots конвертирует занятые интервалы в HTTP модель
func FromDomainSlots(slots []domain.Slot) []BusySlot {
	result := make([]BusySlot, len(slots))
	for i, s := range slots {
		result[i] = BusySlot{
			StartTime: s.StartTime().String(),
			EndTime:   s.EndTime().String(),
		}
	}
	return result
}
