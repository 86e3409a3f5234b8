// Package availability отвечает на вопрос, свободен ли провайдер в заданный интервал.
// Checker только читает хранилище: если в контексте есть транзакция, чтение
// происходит внутри нее, и проверка атомарна вместе с последующей вставкой.
package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

// Checker проверяет пересечения с бронированиями провайдера
type Checker struct {
	bookingRepo BookingRepository
}

// NewChecker создает новый экземпляр Checker
func NewChecker(bookingRepo BookingRepository) *Checker {
	return &Checker{bookingRepo: bookingRepo}
}

// IsAvailable возвращает true, если интервал [start, start+duration) не пересекается
// ни с одним бронированием провайдера на дату в статусах PENDING, CONFIRMED, IN_PROGRESS.
// excludeBookingID исключает бронирование из проверки (перенос существующей записи).
func (c *Checker) IsAvailable(
	ctx context.Context,
	providerID int64,
	date time.Time,
	start types.TimeString,
	durationMinutes int,
	excludeBookingID *int64,
) (bool, error) {
	slot, err := requestedSlot(start, durationMinutes)
	if err != nil {
		return false, err
	}

	bookings, err := c.bookingRepo.GetByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return false, fmt.Errorf("%w: IsAvailable - get bookings: %w", domain.ErrStoreUnavailable, err)
	}

	for _, b := range bookings {
		if !b.HoldsSlot() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if slot.Overlaps(b.Slot()) {
			return false, nil
		}
	}

	return true, nil
}

// BusySlots возвращает занятые интервалы провайдера на дату, отсортированные по началу
func (c *Checker) BusySlots(ctx context.Context, providerID int64, date time.Time) ([]domain.Slot, error) {
	bookings, err := c.bookingRepo.GetByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: BusySlots - get bookings: %w", domain.ErrStoreUnavailable, err)
	}

	slots := make([]domain.Slot, 0, len(bookings))
	for _, b := range bookings {
		if b.HoldsSlot() {
			slots = append(slots, b.Slot())
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start == slots[j].Start {
			return slots[i].End < slots[j].End
		}
		return slots[i].Start < slots[j].Start
	})

	return slots, nil
}

func requestedSlot(start types.TimeString, durationMinutes int) (domain.Slot, error) {
	if durationMinutes <= 0 {
		return domain.Slot{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if err := start.Validate(); err != nil {
		return domain.Slot{}, fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}

	slot := domain.NewSlot(start, durationMinutes)
	if !slot.FitsInDay() {
		return domain.Slot{}, fmt.Errorf("%w: %s + %d min", ErrCrossesMidnight, start, durationMinutes)
	}

	return slot, nil
}
