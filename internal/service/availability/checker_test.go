package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/ptr"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, providerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func booking(id int64, start string, dur int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ProviderID:      7,
		BookingDate:     testDate,
		StartTime:       types.TimeString(start),
		DurationMinutes: dur,
		Status:          status,
	}
}

func TestChecker_IsAvailable(t *testing.T) {
	existing := []*domain.Booking{
		booking(1, "10:00", 60, domain.StatusConfirmed),
		booking(2, "14:00", 30, domain.StatusCancelled),
		booking(3, "16:00", 60, domain.StatusCompleted),
		booking(4, "18:00", 90, domain.StatusPending),
	}

	tests := []struct {
		name     string
		start    string
		duration int
		exclude  *int64
		want     bool
	}{
		{name: "overlaps confirmed booking", start: "10:30", duration: 60, want: false},
		{name: "contains existing booking", start: "09:00", duration: 180, want: false},
		{name: "ends exactly at existing start", start: "09:00", duration: 60, want: true},
		{name: "starts exactly at existing end", start: "11:00", duration: 60, want: true},
		{name: "cancelled booking ignored", start: "14:00", duration: 30, want: true},
		{name: "completed booking ignored", start: "16:00", duration: 60, want: true},
		{name: "pending booking holds slot", start: "19:00", duration: 15, want: false},
		{name: "excluded booking ignored", start: "10:15", duration: 30, exclude: ptr.Ptr(int64(1)), want: true},
		{name: "ends at midnight", start: "23:00", duration: 60, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockBookingRepo)
			repo.On("GetByProviderAndDate", mock.Anything, int64(7), testDate).Return(existing, nil)

			got, err := NewChecker(repo).IsAvailable(context.Background(), 7, testDate,
				types.TimeString(tt.start), tt.duration, tt.exclude)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_IsAvailable_NoBookings(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("GetByProviderAndDate", mock.Anything, int64(7), testDate).Return([]*domain.Booking{}, nil)

	got, err := NewChecker(repo).IsAvailable(context.Background(), 7, testDate, "00:00", 30, nil)

	require.NoError(t, err)
	assert.True(t, got)
}

func TestChecker_IsAvailable_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		wantErr  error
	}{
		{name: "zero duration", start: "10:00", duration: 0, wantErr: ErrInvalidDuration},
		{name: "negative duration", start: "10:00", duration: -30, wantErr: ErrInvalidDuration},
		{name: "crosses midnight", start: "23:30", duration: 60, wantErr: ErrCrossesMidnight},
		{name: "bad time", start: "25:99", duration: 30, wantErr: ErrInvalidStartTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockBookingRepo)

			_, err := NewChecker(repo).IsAvailable(context.Background(), 7, testDate,
				types.TimeString(tt.start), tt.duration, nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "GetByProviderAndDate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestChecker_IsAvailable_StoreError(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("GetByProviderAndDate", mock.Anything, int64(7), testDate).Return(nil, errors.New("connection refused"))

	_, err := NewChecker(repo).IsAvailable(context.Background(), 7, testDate, "10:00", 30, nil)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestChecker_BusySlots(t *testing.T) {
	repo := new(mockBookingRepo)
	repo.On("GetByProviderAndDate", mock.Anything, int64(7), testDate).Return([]*domain.Booking{
		booking(4, "18:00", 90, domain.StatusPending),
		booking(2, "14:00", 30, domain.StatusCancelled),
		booking(1, "10:00", 60, domain.StatusInProgress),
	}, nil)

	slots, err := NewChecker(repo).BusySlots(context.Background(), 7, testDate)

	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{
		{Start: 600, End: 660},
		{Start: 1080, End: 1170},
	}, slots)
}
