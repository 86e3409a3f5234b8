package record_payment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HS-BookingService/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) PaymentRecorded(string) {}

func setup(t *testing.T, status domain.BookingStatus, total string) (*memory.Store, *UseCase, *domain.Booking) {
	t.Helper()

	store := memory.NewStore()
	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		CustomerID:      1,
		ProviderID:      10,
		ServiceID:       1,
		BookingDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "12:00",
		DurationMinutes: 60,
		TotalAmount:     decimal.RequireFromString(total),
		Status:          status,
	})
	require.NoError(t, err)

	uc := NewUseCase(store.Bookings(), store.Payments(), store.TxManager(), nopMetrics{}, logger.NewNop())
	return store, uc, b
}

func pay(uc *UseCase, bookingID int64, amount, txID string) (*domain.Payment, error) {
	return uc.Execute(context.Background(), &Request{
		BookingID:     bookingID,
		Amount:        decimal.RequireFromString(amount),
		TransactionID: txID,
	})
}

// Стоимость 50: платеж 30 проходит, еще 30 отклоняется, 20 проходит
func TestUseCase_Execute_PaymentBound(t *testing.T) {
	store, uc, b := setup(t, domain.StatusConfirmed, "50.00")

	first, err := pay(uc, b.ID, "30.00", "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, first.Status)

	_, err = pay(uc, b.ID, "30.00", "tx-2")
	assert.ErrorIs(t, err, ErrOverPayment)
	assert.Equal(t, domain.KindOverPayment, domain.Kind(err))

	_, err = pay(uc, b.ID, "20.00", "tx-3")
	require.NoError(t, err)

	payments, err := store.Payments().GetByBookingID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.True(t, domain.IsPaidInFull(b.TotalAmount, payments))
}

func TestUseCase_Execute_PendingAndFailedDoNotCount(t *testing.T) {
	_, uc, b := setup(t, domain.StatusPending, "50.00")

	p, err := uc.Execute(context.Background(), &Request{
		BookingID: b.ID, Amount: decimal.RequireFromString("50"), TransactionID: "tx-pending", Status: "PENDING",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)

	_, err = uc.Execute(context.Background(), &Request{
		BookingID: b.ID, Amount: decimal.RequireFromString("50"), TransactionID: "tx-failed", Status: "FAILED",
	})
	require.NoError(t, err)

	_, err = pay(uc, b.ID, "50.00", "tx-ok")
	assert.NoError(t, err)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      func(bookingID int64) *Request
		wantErr  error
		wantKind string
	}{
		{
			name: "booking not found",
			req: func(int64) *Request {
				return &Request{BookingID: 404, Amount: decimal.NewFromInt(10), TransactionID: "tx"}
			},
			wantErr:  ErrBookingNotFound,
			wantKind: domain.KindNotFound,
		},
		{
			name: "zero amount",
			req: func(id int64) *Request {
				return &Request{BookingID: id, Amount: decimal.Zero, TransactionID: "tx"}
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
		{
			name: "negative amount",
			req: func(id int64) *Request {
				return &Request{BookingID: id, Amount: decimal.NewFromInt(-5), TransactionID: "tx"}
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
		{
			name: "three decimal places",
			req: func(id int64) *Request {
				return &Request{BookingID: id, Amount: decimal.RequireFromString("10.005"), TransactionID: "tx"}
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
		{
			name: "empty transaction id",
			req: func(id int64) *Request {
				return &Request{BookingID: id, Amount: decimal.NewFromInt(10), TransactionID: "  "}
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
		{
			name: "refunded on create",
			req: func(id int64) *Request {
				return &Request{BookingID: id, Amount: decimal.NewFromInt(10), TransactionID: "tx", Status: "REFUNDED"}
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
		{
			name: "unknown status",
			req: func(id int64) *Request {
				return &Request{BookingID: id, Amount: decimal.NewFromInt(10), TransactionID: "tx", Status: "PAID"}
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, uc, b := setup(t, domain.StatusConfirmed, "50.00")

			_, err := uc.Execute(context.Background(), tt.req(b.ID))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, domain.Kind(err))
		})
	}
}

func TestUseCase_Execute_TrailingZerosAccepted(t *testing.T) {
	_, uc, b := setup(t, domain.StatusConfirmed, "50.00")

	_, err := pay(uc, b.ID, "10.100", "tx-1")
	assert.NoError(t, err)
}

func TestUseCase_Execute_DuplicateTransaction(t *testing.T) {
	_, uc, b := setup(t, domain.StatusConfirmed, "50.00")

	_, err := pay(uc, b.ID, "10.00", "tx-1")
	require.NoError(t, err)

	_, err = pay(uc, b.ID, "10.00", "tx-1")
	assert.ErrorIs(t, err, ErrDuplicateTransaction)
	assert.Equal(t, domain.KindDuplicateTransaction, domain.Kind(err))
}

func TestUseCase_Execute_CancelledBooking(t *testing.T) {
	_, uc, b := setup(t, domain.StatusCancelled, "50.00")

	_, err := pay(uc, b.ID, "10.00", "tx-1")

	assert.ErrorIs(t, err, ErrBookingCancelled)
	assert.Equal(t, domain.KindInvalidTransition, domain.Kind(err))
}

// 10 параллельных платежей по 10 при стоимости 50: проходят ровно 5
func TestUseCase_Execute_ConcurrentBound(t *testing.T) {
	store, uc, b := setup(t, domain.StatusConfirmed, "50.00")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := pay(uc, b.ID, "10.00", fmt.Sprintf("tx-%d", i))
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrOverPayment)
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)

	payments, err := store.Payments().GetByBookingID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, domain.SucceededTotal(payments).Equal(decimal.RequireFromString("50")))
}

func TestUseCase_UpdatePaymentStatus(t *testing.T) {
	_, uc, b := setup(t, domain.StatusConfirmed, "50.00")
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{
		BookingID: b.ID, Amount: decimal.RequireFromString("40"), TransactionID: "tx-pending", Status: "PENDING",
	})
	require.NoError(t, err)
	_, err = pay(uc, b.ID, "20.00", "tx-ok")
	require.NoError(t, err)

	// 20 + 40 > 50
	_, err = uc.UpdatePaymentStatus(ctx, &UpdateStatusRequest{TransactionID: "tx-pending", Status: "SUCCEEDED"})
	assert.ErrorIs(t, err, ErrOverPayment)

	refunded, err := uc.UpdatePaymentStatus(ctx, &UpdateStatusRequest{TransactionID: "tx-ok", Status: "REFUNDED"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, refunded.Status)

	succeeded, err := uc.UpdatePaymentStatus(ctx, &UpdateStatusRequest{TransactionID: "tx-pending", Status: "SUCCEEDED"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSucceeded, succeeded.Status)

	// Повторный callback с тем же статусом
	again, err := uc.UpdatePaymentStatus(ctx, &UpdateStatusRequest{TransactionID: "tx-pending", Status: "SUCCEEDED"})
	require.NoError(t, err)
	assert.Equal(t, succeeded.ID, again.ID)

	_, err = uc.UpdatePaymentStatus(ctx, &UpdateStatusRequest{TransactionID: "tx-ok", Status: "SUCCEEDED"})
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdatePaymentStatus(ctx, &UpdateStatusRequest{TransactionID: "missing", Status: "FAILED"})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = uc.UpdatePaymentStatus(ctx, &UpdateStatusRequest{TransactionID: "tx-ok", Status: "LOST"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
