// Package memory хранит бронирования, платежи и справочники в памяти процесса.
// Используется в dev-режиме (storage.driver = "memory") и в тестах use case'ов.
//
// Все данные защищены одним RWMutex. Транзакция (TxManager) держит блокировку
// на запись до своего завершения, поэтому проверка доступности и вставка
// выполняются атомарно. При ошибке изменения откатываются по журналу отмены.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// Store хранилище в памяти
type Store struct {
	mu sync.RWMutex

	bookings map[int64]*domain.Booking
	payments map[int64]*domain.Payment
	services map[int64]*domain.Service
	users    map[int64]*domain.User

	lastBookingID int64
	lastPaymentID int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[int64]*domain.Booking),
		payments: make(map[int64]*domain.Payment),
		services: make(map[int64]*domain.Service),
		users:    make(map[int64]*domain.User),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock подменяет источник времени для created_at/updated_at
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddUser добавляет или заменяет пользователя
func (s *Store) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = &u
}

// AddService добавляет или заменяет услугу
func (s *Store) AddService(svc domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = &svc
}

// Bookings возвращает репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Payments возвращает репозиторий платежей поверх хранилища
func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

// Catalog возвращает репозиторий услуг и пользователей
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{store: s}
}

// TxManager возвращает менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// rlock берет блокировку на чтение, если вызов не внутри транзакции этого хранилища
func (s *Store) rlock(ctx context.Context) func() {
	if s.txFrom(ctx) != nil {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// lock берет блокировку на запись, если вызов не внутри транзакции.
// Возвращает транзакцию (или nil) для записи журнала отмены.
func (s *Store) lock(ctx context.Context) (*txState, func()) {
	if tx := s.txFrom(ctx); tx != nil {
		return tx, func() {}
	}
	s.mu.Lock()
	return nil, s.mu.Unlock
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.SpecialInstructions != nil {
		v := *b.SpecialInstructions
		c.SpecialInstructions = &v
	}
	return &c
}

func copyPayment(p *domain.Payment) *domain.Payment {
	c := *p
	return &c
}
