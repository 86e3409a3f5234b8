package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/HS-BookingService/pkg/types"
)

// Booking represents a service appointment reserved by a customer with a provider
type Booking struct {
	ID         int64
	CustomerID int64
	ProviderID int64
	ServiceID  int64

	BookingDate time.Time // date only, no timezone conversion
	StartTime   types.TimeString
	// DurationMinutes and TotalAmount are copied from the service at creation
	// and never recomputed afterwards
	DurationMinutes int
	TotalAmount     decimal.Decimal

	Status              BookingStatus
	SpecialInstructions *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the half-open interval the booking occupies on its date
func (b *Booking) Slot() Slot {
	start := b.StartTime.Minutes()
	return Slot{Start: start, End: start + b.DurationMinutes}
}

// HoldsSlot returns true if the booking blocks its time window for other bookings
func (b *Booking) HoldsSlot() bool {
	return b.Status.HoldsSlot()
}

// IsTerminal returns true if the booking can no longer change status
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// BookingsFilter selects bookings for listing
type BookingsFilter struct {
	CustomerID *int64
	ProviderID *int64
	Date       *time.Time
	Statuses   []BookingStatus
	OrderBy    BookingsOrder
}

// BookingsOrder defines listing order
type BookingsOrder int

const (
	// OrderBySchedule sorts by booking date and start time, earliest first
	OrderBySchedule BookingsOrder = iota
	// OrderByCreatedDesc sorts by creation time, newest first
	OrderByCreatedDesc
)
