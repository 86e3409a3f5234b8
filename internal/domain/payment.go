package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentSucceeded, PaymentFailed},
	PaymentSucceeded: {PaymentRefunded},
	PaymentFailed:    {},
	PaymentRefunded:  {},
}

// IsValid returns true if the payment status is known
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// CanTransitionTo returns true if a payment may move from s to target
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts a string into a PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown payment status %q", ErrValidation, s)
	}
	return status, nil
}

// Payment belongs to exactly one booking
type Payment struct {
	ID            int64
	BookingID     int64
	Amount        decimal.Decimal
	Status        PaymentStatus
	TransactionID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SucceededTotal sums the amounts of SUCCEEDED payments
func SucceededTotal(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == PaymentSucceeded {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// IsPaidInFull returns true if SUCCEEDED payments cover the booking total
func IsPaidInFull(total decimal.Decimal, payments []*Payment) bool {
	return SucceededTotal(payments).GreaterThanOrEqual(total)
}
