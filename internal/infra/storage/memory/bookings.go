package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти, повторяет контракт booking.Repository
type BookingRepository struct {
	store *Store
}

// Create сохраняет бронирование и присваивает ему ID
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s := r.store
	tx, unlock := s.lock(ctx)
	defer unlock()

	s.lastBookingID++
	created := copyBooking(booking)
	created.ID = s.lastBookingID
	created.BookingDate = dateOnly(booking.BookingDate)
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt

	s.bookings[created.ID] = created
	tx.onRollback(func() { delete(s.bookings, created.ID) })

	return copyBooking(created), nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.store.rlock(ctx)()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// GetByIDForUpdate получает бронирование по ID. Транзакция уже держит
// исключительную блокировку хранилища.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

// GetByProviderAndDate получает бронирования провайдера на дату, занимающие время
func (r *BookingRepository) GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error) {
	defer r.store.rlock(ctx)()

	day := dateOnly(date)
	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.ProviderID == providerID && b.BookingDate.Equal(day) && b.HoldsSlot() {
			result = append(result, copyBooking(b))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return lessSchedule(result[i], result[j])
	})

	return result, nil
}

// List получает бронирования по фильтру
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	defer r.store.rlock(ctx)()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if matches(b, filter) {
			result = append(result, copyBooking(b))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if filter.OrderBy == domain.OrderByCreatedDesc {
			if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			}
			return result[i].ID > result[j].ID
		}
		return lessSchedule(result[i], result[j])
	})

	return result, nil
}

// UpdateStatus меняет статус бронирования и обновляет updated_at
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	s := r.store
	tx, unlock := s.lock(ctx)
	defer unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	prev := copyBooking(b)
	b.Status = status
	b.UpdatedAt = s.now()
	tx.onRollback(func() { s.bookings[id] = prev })

	return copyBooking(b), nil
}

func matches(b *domain.Booking, f domain.BookingsFilter) bool {
	if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
		return false
	}
	if f.ProviderID != nil && b.ProviderID != *f.ProviderID {
		return false
	}
	if f.Date != nil && !b.BookingDate.Equal(dateOnly(*f.Date)) {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, st := range f.Statuses {
			if b.Status == st {
				return true
			}
		}
		return false
	}
	return true
}

func lessSchedule(a, b *domain.Booking) bool {
	if !a.BookingDate.Equal(b.BookingDate) {
		return a.BookingDate.Before(b.BookingDate)
	}
	if am, bm := a.StartTime.Minutes(), b.StartTime.Minutes(); am != bm {
		return am < bm
	}
	return a.ID < b.ID
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
