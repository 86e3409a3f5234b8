package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, providerID int64, date time.Time, start types.TimeString, durationMinutes int, excludeBookingID *int64) (bool, error)
	BusySlots(ctx context.Context, providerID int64, date time.Time) ([]domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
