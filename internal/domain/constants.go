package domain

// Business validation constants
const (
	MaxSpecialInstructionsLength = 1000
	MoneyScale                   = 2

	// Шаг сетки слотов при подборе свободного времени
	DefaultSlotStepMinutes = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
