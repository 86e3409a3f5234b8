package get_available_slots

import (
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

// generateSlots строит сетку начал с шагом step, в которую помещается услуга длительностью duration.
// Для сегодняшней даты прошедшие слоты отбрасываются, для прошедших дат сетка пустая.
func generateSlots(duration, step int, busy []domain.Slot, requestDate, now time.Time) []Slot {
	if isDateInPast(requestDate, now) {
		return []Slot{}
	}

	today := isSameDay(requestDate, now)
	nowTime := types.NewTimeString(now)

	result := make([]Slot, 0)
	for start := 0; start+duration <= types.MinutesInDay; start += step {
		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			continue
		}
		if today && startTime.IsBefore(nowTime) {
			continue
		}

		candidate := domain.Slot{Start: start, End: start + duration}
		result = append(result, Slot{
			StartTime:       startTime,
			DurationMinutes: duration,
			Available:       !overlapsAny(candidate, busy),
		})
	}

	return result
}

// overlapsAny проверяет пересечение с занятыми интервалами.
// Граничащие интервалы (11:00-11:30 и 11:30-12:00) не пересекаются.
func overlapsAny(candidate domain.Slot, busy []domain.Slot) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
