package domain

import "github.com/shopspring/decimal"

// Service is an offering of exactly one provider
type Service struct {
	ID              int64
	ProviderID      int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	IsAvailable     bool
}
