package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/HS-BookingService/internal/service/availability"
	"github.com/m04kA/HS-BookingService/pkg/logger"
	"github.com/m04kA/HS-BookingService/pkg/ptr"
	"github.com/m04kA/HS-BookingService/pkg/txmanager"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

const (
	customerID = int64(1)
	providerID = int64(10)
	adminID    = int64(100)
)

var bookingDate = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *countingMetrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) SlotConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

func newStore() *memory.Store {
	store := memory.NewStore()
	store.AddUser(domain.User{ID: customerID, Name: "Анна", Role: domain.RoleCustomer})
	store.AddUser(domain.User{ID: 2, Name: "Игорь", Role: domain.RoleCustomer})
	store.AddUser(domain.User{ID: providerID, Name: "Мастер", Role: domain.RoleProvider})
	store.AddUser(domain.User{ID: adminID, Name: "Админ", Role: domain.RoleAdmin})
	store.AddService(domain.Service{
		ID: 1, ProviderID: providerID, Name: "Замена смесителя",
		Price: decimal.RequireFromString("50.00"), DurationMinutes: 60, IsAvailable: true,
	})
	store.AddService(domain.Service{
		ID: 2, ProviderID: providerID, Name: "Снята с продажи",
		Price: decimal.RequireFromString("10.00"), DurationMinutes: 30, IsAvailable: false,
	})
	store.AddService(domain.Service{
		ID: 3, ProviderID: providerID, Name: "Генеральная уборка",
		Price: decimal.RequireFromString("120.00"), DurationMinutes: 240, IsAvailable: true,
	})
	return store
}

func newUseCase(store *memory.Store, m Metrics) *UseCase {
	return newUseCaseWithTx(store, store.TxManager(), m)
}

func newUseCaseWithTx(store *memory.Store, tx TransactionManager, m Metrics) *UseCase {
	bookings := store.Bookings()
	return NewUseCase(
		bookings,
		store.Catalog(),
		store.Catalog(),
		availability.NewChecker(bookings),
		tx,
		m,
		logger.NewNop(),
	)
}

func request(customer, service int64, start string) *Request {
	return &Request{
		CustomerID: customer,
		ServiceID:  service,
		Date:       bookingDate,
		StartTime:  types.TimeString(start),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	store := newStore()
	m := &countingMetrics{}
	uc := newUseCase(store, m)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:          customerID,
		ServiceID:           1,
		Date:                bookingDate,
		StartTime:           "10:00",
		SpecialInstructions: ptr.Ptr("Код домофона 42"),
	})

	require.NoError(t, err)
	assert.Positive(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, providerID, resp.ProviderID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, decimal.RequireFromString("50").Equal(resp.TotalAmount))
	assert.Equal(t, "Замена смесителя", resp.ServiceName)
	assert.Equal(t, "Код домофона 42", *resp.SpecialInstructions)
	assert.Equal(t, 1, m.created)

	stored, err := store.Bookings().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

// Бронирование 10:00-11:00 существует: пересекающийся интервал отклоняется,
// смежный интервал 11:00-12:00 разрешен.
func TestUseCase_Execute_OverlapAndAdjacent(t *testing.T) {
	store := newStore()
	m := &countingMetrics{}
	uc := newUseCase(store, m)
	ctx := context.Background()

	_, err := uc.Execute(ctx, request(customerID, 1, "10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request(2, 1, "10:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, domain.KindSlotConflict, domain.Kind(err))

	_, err = uc.Execute(ctx, request(2, 3, "08:00"))
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	_, err = uc.Execute(ctx, request(2, 1, "11:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request(2, 1, "09:00"))
	require.NoError(t, err)

	assert.Equal(t, 3, m.created)
	assert.Equal(t, 2, m.conflicts)
}

func TestUseCase_Execute_CancelledBookingFreesSlot(t *testing.T) {
	store := newStore()
	uc := newUseCase(store, &countingMetrics{})
	ctx := context.Background()

	first, err := uc.Execute(ctx, request(customerID, 1, "10:00"))
	require.NoError(t, err)

	_, err = store.Bookings().UpdateStatus(ctx, first.ID, domain.StatusCancelled)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request(2, 1, "10:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		wantErr  error
		wantKind string
	}{
		{
			name:     "customer not found",
			req:      request(999, 1, "10:00"),
			wantErr:  ErrCustomerNotFound,
			wantKind: domain.KindNotFound,
		},
		{
			name:     "provider cannot create",
			req:      request(providerID, 1, "10:00"),
			wantErr:  ErrNotCustomer,
			wantKind: domain.KindUnauthorized,
		},
		{
			name:     "admin cannot create",
			req:      request(adminID, 1, "10:00"),
			wantErr:  ErrNotCustomer,
			wantKind: domain.KindUnauthorized,
		},
		{
			name:     "service not found",
			req:      request(customerID, 404, "10:00"),
			wantErr:  ErrServiceNotFound,
			wantKind: domain.KindNotFound,
		},
		{
			name:     "service unavailable",
			req:      request(customerID, 2, "10:00"),
			wantErr:  ErrServiceUnavailable,
			wantKind: domain.KindValidation,
		},
		{
			name:     "crosses midnight",
			req:      request(customerID, 3, "21:00"),
			wantErr:  ErrInvalidServiceDuration,
			wantKind: domain.KindValidation,
		},
		{
			name:     "bad start time",
			req:      request(customerID, 1, "9am"),
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
		{
			name:     "missing date",
			req:      &Request{CustomerID: customerID, ServiceID: 1, StartTime: "10:00"},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
		{
			name: "instructions too long",
			req: &Request{
				CustomerID: customerID, ServiceID: 1, Date: bookingDate, StartTime: "10:00",
				SpecialInstructions: ptr.Ptr(string(make([]rune, domain.MaxSpecialInstructionsLength+1))),
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			uc := newUseCase(store, &countingMetrics{})

			_, err := uc.Execute(context.Background(), tt.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, domain.Kind(err))

			all, err := store.Bookings().List(context.Background(), domain.BookingsFilter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

// Параллельные запросы на один и тот же интервал: успешен ровно один
func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	store := newStore()
	m := &countingMetrics{}
	uc := newUseCase(store, m)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer := customerID
			if i%2 == 1 {
				customer = 2
			}
			// Сдвигаем начало, чтобы интервалы пересекались, но не совпадали
			start := fmt.Sprintf("10:%02d", i%30)
			_, err := uc.Execute(context.Background(), request(customer, 1, start))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, domain.ErrSlotConflict) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	held, err := store.Bookings().GetByProviderAndDate(context.Background(), providerID, bookingDate)
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestUseCase_Execute_RetriesSerializationFailureOnce(t *testing.T) {
	store := newStore()
	tx := new(mockTxManager)
	tx.On("DoSerializable", mock.Anything).Return(fmt.Errorf("%w: commit", txmanager.ErrSerialization)).Once()
	tx.On("DoSerializable", mock.Anything).Return(nil).Once()

	resp, err := newUseCaseWithTx(store, tx, &countingMetrics{}).Execute(context.Background(), request(customerID, 1, "10:00"))

	require.NoError(t, err)
	assert.Positive(t, resp.ID)
	tx.AssertNumberOfCalls(t, "DoSerializable", 2)
}

func TestUseCase_Execute_RepeatedSerializationFailureIsConflict(t *testing.T) {
	store := newStore()
	m := &countingMetrics{}
	tx := new(mockTxManager)
	tx.On("DoSerializable", mock.Anything).Return(fmt.Errorf("%w: commit", txmanager.ErrSerialization))

	_, err := newUseCaseWithTx(store, tx, m).Execute(context.Background(), request(customerID, 1, "10:00"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, domain.KindSlotConflict, domain.Kind(err))
	assert.Equal(t, 1, m.conflicts)
	tx.AssertNumberOfCalls(t, "DoSerializable", 2)
}
