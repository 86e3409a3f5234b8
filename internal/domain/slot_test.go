package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSlot_Overlaps(t *testing.T) {
	base := NewSlot("10:00", 60)

	tests := []struct {
		name  string
		other Slot
		want  bool
	}{
		{"same interval", NewSlot("10:00", 60), true},
		{"starts inside", NewSlot("10:30", 60), true},
		{"ends inside", NewSlot("09:30", 60), true},
		{"contains", NewSlot("09:00", 180), true},
		{"contained", NewSlot("10:15", 15), true},
		{"touches end", NewSlot("11:00", 60), false},
		{"touches start", NewSlot("09:00", 60), false},
		{"far away", NewSlot("15:00", 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestSlot_FitsInDay(t *testing.T) {
	assert.True(t, NewSlot("23:00", 60).FitsInDay())
	assert.False(t, NewSlot("23:00", 61).FitsInDay())
	assert.False(t, NewSlot("10:00", 0).FitsInDay())
	assert.False(t, NewSlot("bad", 30).FitsInDay())
}

func TestSlot_Times(t *testing.T) {
	s := NewSlot("22:30", 90)
	assert.Equal(t, "22:30", s.StartTime().String())
	assert.Equal(t, "24:00", s.EndTime().String())
	assert.Equal(t, 90, s.DurationMinutes())
}

func TestIsPaidInFull(t *testing.T) {
	payments := []*Payment{
		{Amount: decimal.RequireFromString("30.00"), Status: PaymentSucceeded},
		{Amount: decimal.RequireFromString("20.00"), Status: PaymentFailed},
		{Amount: decimal.RequireFromString("20.00"), Status: PaymentRefunded},
	}

	assert.False(t, IsPaidInFull(decimal.RequireFromString("50"), payments))
	assert.True(t, IsPaidInFull(decimal.RequireFromString("30"), payments))
	assert.True(t, IsPaidInFull(decimal.Zero, nil))
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindNotFound, Kind(ErrNotFound))
	assert.Equal(t, KindOverPayment, Kind(ErrOverPayment))
	assert.Equal(t, KindInternal, Kind(assert.AnError))
}
