package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/HS-BookingService/internal/domain"
	paymentRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/payment"
)

// PaymentRepository платежи в памяти, повторяет контракт payment.Repository
type PaymentRepository struct {
	store *Store
}

// Create сохраняет платеж; transaction_id уникален
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	s := r.store
	tx, unlock := s.lock(ctx)
	defer unlock()

	for _, p := range s.payments {
		if p.TransactionID == payment.TransactionID {
			return nil, fmt.Errorf("%w: Create - transaction %s", paymentRepo.ErrDuplicateTransaction, payment.TransactionID)
		}
	}

	s.lastPaymentID++
	created := copyPayment(payment)
	created.ID = s.lastPaymentID
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt

	s.payments[created.ID] = created
	tx.onRollback(func() { delete(s.payments, created.ID) })

	return copyPayment(created), nil
}

// GetByBookingID получает платежи бронирования в порядке создания
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	defer r.store.rlock(ctx)()

	result := make([]*domain.Payment, 0)
	for _, p := range r.store.payments {
		if p.BookingID == bookingID {
			result = append(result, copyPayment(p))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// GetByTransactionID получает платеж по идентификатору транзакции шлюза
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	defer r.store.rlock(ctx)()

	for _, p := range r.store.payments {
		if p.TransactionID == transactionID {
			return copyPayment(p), nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

// UpdateStatus меняет статус платежа
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	s := r.store
	tx, unlock := s.lock(ctx)
	defer unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}

	prev := copyPayment(p)
	p.Status = status
	p.UpdatedAt = s.now()
	tx.onRollback(func() { s.payments[id] = prev })

	return copyPayment(p), nil
}
