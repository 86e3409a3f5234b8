package change_status

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HS-BookingService/internal/service/payments"
	"github.com/m04kA/HS-BookingService/pkg/logger"
)

const (
	customerID      = int64(1)
	otherCustomerID = int64(2)
	providerID      = int64(10)
	otherProviderID = int64(11)
	adminID         = int64(100)
)

type recordingMetrics struct {
	mu          sync.Mutex
	transitions []string
}

func (m *recordingMetrics) StatusTransition(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, from+"->"+to)
}

type fixture struct {
	store   *memory.Store
	uc      *UseCase
	metrics *recordingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.AddUser(domain.User{ID: customerID, Role: domain.RoleCustomer})
	store.AddUser(domain.User{ID: otherCustomerID, Role: domain.RoleCustomer})
	store.AddUser(domain.User{ID: providerID, Role: domain.RoleProvider})
	store.AddUser(domain.User{ID: otherProviderID, Role: domain.RoleProvider})
	store.AddUser(domain.User{ID: adminID, Role: domain.RoleAdmin})

	log := logger.NewNop()
	paymentSvc := payments.NewService(store.Bookings(), store.Payments(), store.Catalog(), store.TxManager(), log)
	m := &recordingMetrics{}

	return &fixture{
		store:   store,
		uc:      NewUseCase(store.Bookings(), store.Catalog(), paymentSvc, store.TxManager(), m, log),
		metrics: m,
	}
}

func (f *fixture) booking(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		CustomerID:      customerID,
		ProviderID:      providerID,
		ServiceID:       1,
		BookingDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		TotalAmount:     decimal.RequireFromString("50.00"),
		Status:          status,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) pay(t *testing.T, bookingID int64, amount string, status domain.PaymentStatus, txID string) {
	t.Helper()
	_, err := f.store.Payments().Create(context.Background(), &domain.Payment{
		BookingID:     bookingID,
		Amount:        decimal.RequireFromString(amount),
		Status:        status,
		TransactionID: txID,
	})
	require.NoError(t, err)
}

func (f *fixture) change(bookingID, actorID int64, status domain.BookingStatus) (*domain.Booking, error) {
	return f.uc.Execute(context.Background(), &Request{BookingID: bookingID, ActorID: actorID, Status: string(status)})
}

// Полный жизненный цикл провайдером с оплатой
func TestUseCase_Execute_HappyPath(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, domain.StatusPending)
	f.pay(t, b.ID, "50.00", domain.PaymentSucceeded, "tx-1")

	for _, next := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusInProgress, domain.StatusCompleted} {
		updated, err := f.change(b.ID, providerID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	assert.Equal(t, []string{"PENDING->CONFIRMED", "CONFIRMED->IN_PROGRESS", "IN_PROGRESS->COMPLETED"}, f.metrics.transitions)
}

// PENDING -> COMPLETED пропускает шаги и запрещен даже администратору
func TestUseCase_Execute_SkipIsInvalidTransition(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, domain.StatusPending)

	_, err := f.change(b.ID, adminID, domain.StatusCompleted)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	stored, _ := f.store.Bookings().GetByID(context.Background(), b.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestUseCase_Execute_TerminalStatuses(t *testing.T) {
	for _, terminal := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		for _, target := range []domain.BookingStatus{
			domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
			domain.StatusCompleted, domain.StatusCancelled,
		} {
			t.Run(string(terminal)+"->"+string(target), func(t *testing.T) {
				f := newFixture(t)
				b := f.booking(t, terminal)

				_, err := f.change(b.ID, adminID, target)

				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			})
		}
	}
}

// Оплачено 30 из 50: завершить нельзя, после доплаты 20 можно
func TestUseCase_Execute_CompletionRequiresFullPayment(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, domain.StatusInProgress)
	f.pay(t, b.ID, "30.00", domain.PaymentSucceeded, "tx-1")
	f.pay(t, b.ID, "20.00", domain.PaymentFailed, "tx-failed")
	f.pay(t, b.ID, "20.00", domain.PaymentPending, "tx-pending")

	_, err := f.change(b.ID, providerID, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	assert.Equal(t, domain.KindPaymentIncomplete, domain.Kind(err))

	f.pay(t, b.ID, "20.00", domain.PaymentSucceeded, "tx-2")

	updated, err := f.change(b.ID, providerID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
}

func TestUseCase_Execute_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		actor   int64
		target  domain.BookingStatus
		allowed bool
	}{
		{name: "customer cannot confirm own booking", from: domain.StatusPending, actor: customerID, target: domain.StatusConfirmed},
		{name: "customer cancels own booking", from: domain.StatusPending, actor: customerID, target: domain.StatusCancelled, allowed: true},
		{name: "other customer cannot cancel", from: domain.StatusPending, actor: otherCustomerID, target: domain.StatusCancelled},
		{name: "assigned provider confirms", from: domain.StatusPending, actor: providerID, target: domain.StatusConfirmed, allowed: true},
		{name: "other provider cannot confirm", from: domain.StatusPending, actor: otherProviderID, target: domain.StatusConfirmed},
		{name: "other provider cannot cancel", from: domain.StatusConfirmed, actor: otherProviderID, target: domain.StatusCancelled},
		{name: "assigned provider cancels in progress", from: domain.StatusInProgress, actor: providerID, target: domain.StatusCancelled, allowed: true},
		{name: "admin starts work", from: domain.StatusConfirmed, actor: adminID, target: domain.StatusInProgress, allowed: true},
		{name: "unknown user", from: domain.StatusPending, actor: 999, target: domain.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.booking(t, tt.from)

			updated, err := f.change(b.ID, tt.actor, tt.target)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.target, updated.Status)
				return
			}
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			stored, _ := f.store.Bookings().GetByID(context.Background(), b.ID)
			assert.Equal(t, tt.from, stored.Status)
		})
	}
}

func TestUseCase_Execute_CheckOrder(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, domain.StatusPending)

	_, err := f.change(404, customerID, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, domain.KindNotFound, domain.Kind(err))

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: b.ID, ActorID: customerID, Status: "DONE"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, domain.KindValidation, domain.Kind(err))

	// Переход проверяется раньше прав: чужой заказчик получает InvalidTransition
	_, err = f.change(b.ID, otherCustomerID, domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.change(b.ID, customerID, domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Параллельные переходы одного бронирования: CONFIRMED и CANCELLED из PENDING.
// Выигрывает ровно один, итоговый статус согласован с успешным запросом.
func TestUseCase_Execute_ConcurrentTransitions(t *testing.T) {
	for i := 0; i < 20; i++ {
		f := newFixture(t)
		b := f.booking(t, domain.StatusPending)

		var wg sync.WaitGroup
		results := make([]error, 2)
		targets := []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCancelled}

		for j, target := range targets {
			wg.Add(1)
			go func(j int, target domain.BookingStatus) {
				defer wg.Done()
				_, results[j] = f.change(b.ID, adminID, target)
			}(j, target)
		}
		wg.Wait()

		stored, err := f.store.Bookings().GetByID(context.Background(), b.ID)
		require.NoError(t, err)

		switch {
		case results[0] == nil && results[1] == nil:
			// CONFIRMED -> CANCELLED допустим, но только в этом порядке
			assert.Equal(t, domain.StatusCancelled, stored.Status)
		case results[0] == nil:
			assert.Equal(t, domain.StatusConfirmed, stored.Status)
		case results[1] == nil:
			assert.Equal(t, domain.StatusCancelled, stored.Status)
			assert.ErrorIs(t, results[0], domain.ErrInvalidTransition)
		default:
			t.Fatalf("both transitions failed: %v, %v", results[0], results[1])
		}
	}
}
