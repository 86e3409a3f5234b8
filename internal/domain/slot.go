package domain

import "github.com/m04kA/HS-BookingService/pkg/types"

// Slot is a half-open interval [Start, End) in minutes since midnight
type Slot struct {
	Start int
	End   int
}

// NewSlot builds the slot for a start time and a duration
func NewSlot(start types.TimeString, durationMinutes int) Slot {
	s := start.Minutes()
	return Slot{Start: s, End: s + durationMinutes}
}

// Overlaps returns true if the two intervals share at least one minute.
// Intervals that only touch (one ends exactly when the other starts) do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start < other.End && other.Start < s.End
}

// DurationMinutes returns the interval length
func (s Slot) DurationMinutes() int {
	return s.End - s.Start
}

// FitsInDay returns true if the interval is non-empty and does not cross midnight
func (s Slot) FitsInDay() bool {
	return s.Start >= 0 && s.End > s.Start && s.End <= types.MinutesInDay
}

// StartTime returns the interval start as HH:MM
func (s Slot) StartTime() types.TimeString {
	t, _ := types.NewTimeStringFromMinutes(s.Start)
	return t
}

// EndTime returns the interval end as HH:MM; midnight is rendered as "24:00"
func (s Slot) EndTime() types.TimeString {
	if s.End == types.MinutesInDay {
		return "24:00"
	}
	t, _ := types.NewTimeStringFromMinutes(s.End)
	return t
}
