package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HS-BookingService/internal/service/availability"
	"github.com/m04kA/HS-BookingService/pkg/logger"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

const providerID = int64(10)

var day = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func setup(t *testing.T, now time.Time) (*UseCase, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.AddService(domain.Service{
		ID: 1, ProviderID: providerID, Name: "Замена смесителя",
		Price: decimal.RequireFromString("50.00"), DurationMinutes: 60, IsAvailable: true,
	})
	store.AddService(domain.Service{
		ID: 2, ProviderID: providerID, Name: "Снята с продажи",
		Price: decimal.RequireFromString("10.00"), DurationMinutes: 30, IsAvailable: false,
	})
	store.AddService(domain.Service{
		ID: 3, ProviderID: 11, Name: "Чужая услуга",
		Price: decimal.RequireFromString("10.00"), DurationMinutes: 30, IsAvailable: true,
	})

	uc := NewUseCase(store.Catalog(), availability.NewChecker(store.Bookings()), logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, store
}

func addBooking(t *testing.T, store *memory.Store, start string, duration int, status domain.BookingStatus) {
	t.Helper()
	_, err := store.Bookings().Create(context.Background(), &domain.Booking{
		CustomerID: 1, ProviderID: providerID, ServiceID: 1,
		BookingDate: day, StartTime: types.TimeString(start), DurationMinutes: duration,
		Status: status, TotalAmount: decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)
}

func slotAt(t *testing.T, resp *Response, start string) Slot {
	t.Helper()
	for _, s := range resp.Slots {
		if s.StartTime.String() == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return Slot{}
}

func TestUseCase_Execute_MarksBusySlots(t *testing.T) {
	uc, store := setup(t, day.AddDate(0, 0, -1))
	addBooking(t, store, "10:00", 60, domain.StatusConfirmed)
	addBooking(t, store, "14:00", 30, domain.StatusCancelled)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: providerID, ServiceID: 1, Date: day})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	require.Len(t, resp.BusySlots, 1)
	assert.Equal(t, domain.Slot{Start: 600, End: 660}, resp.BusySlots[0])

	// 23:00 последний слот, который помещается в день
	assert.Len(t, resp.Slots, 47)
	assert.Equal(t, "23:00", resp.Slots[len(resp.Slots)-1].StartTime.String())

	assert.True(t, slotAt(t, resp, "09:00").Available, "ends exactly when the booking starts")
	assert.False(t, slotAt(t, resp, "09:30").Available)
	assert.False(t, slotAt(t, resp, "10:30").Available)
	assert.True(t, slotAt(t, resp, "11:00").Available, "starts exactly when the booking ends")
	assert.True(t, slotAt(t, resp, "14:00").Available, "cancelled bookings do not hold the slot")
}

func TestUseCase_Execute_Today(t *testing.T) {
	now := day.Add(15*time.Hour + 10*time.Minute)
	uc, _ := setup(t, now)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: providerID, ServiceID: 1, Date: day})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "15:30", resp.Slots[0].StartTime.String())
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc, _ := setup(t, day.AddDate(0, 0, 1))

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: providerID, ServiceID: 1, Date: day})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc, _ := setup(t, day.AddDate(0, 0, -1))

	tests := []struct {
		name    string
		req     *Request
		wantErr error
		kind    error
	}{
		{"invalid provider", &Request{ProviderID: 0, ServiceID: 1, Date: day}, ErrInvalidInput, domain.ErrValidation},
		{"missing date", &Request{ProviderID: providerID, ServiceID: 1}, ErrInvalidInput, domain.ErrValidation},
		{"unknown service", &Request{ProviderID: providerID, ServiceID: 99, Date: day}, ErrServiceNotFound, domain.ErrNotFound},
		{"service of another provider", &Request{ProviderID: providerID, ServiceID: 3, Date: day}, ErrServiceNotFound, domain.ErrNotFound},
		{"unavailable service", &Request{ProviderID: providerID, ServiceID: 2, Date: day}, ErrServiceUnavailable, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}
