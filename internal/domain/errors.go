package domain

import "errors"

// Error kinds returned by the booking core. Package-level errors wrap one of
// these so callers can branch with errors.Is regardless of the origin.
var (
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrValidation           = errors.New("validation error")
	ErrSlotConflict         = errors.New("slot conflict")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrPaymentIncomplete    = errors.New("payment incomplete")
	ErrOverPayment          = errors.New("over payment")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// Stable names of the error kinds
const (
	KindNotFound             = "NotFound"
	KindUnauthorized         = "Unauthorized"
	KindValidation           = "ValidationError"
	KindSlotConflict         = "SlotConflict"
	KindInvalidTransition    = "InvalidTransition"
	KindPaymentIncomplete    = "PaymentIncomplete"
	KindOverPayment          = "OverPayment"
	KindDuplicateTransaction = "DuplicateTransaction"
	KindStoreUnavailable     = "StoreUnavailable"
	KindInternal             = "Internal"
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNotFound, KindNotFound},
	{ErrUnauthorized, KindUnauthorized},
	{ErrValidation, KindValidation},
	{ErrSlotConflict, KindSlotConflict},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrPaymentIncomplete, KindPaymentIncomplete},
	{ErrOverPayment, KindOverPayment},
	{ErrDuplicateTransaction, KindDuplicateTransaction},
	{ErrStoreUnavailable, KindStoreUnavailable},
}

// Kind returns the stable name of the error kind err wraps, or KindInternal
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return KindInternal
}
