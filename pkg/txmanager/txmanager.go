// Package txmanager управляет транзакциями PostgreSQL, передавая их в репозитории через context
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/HS-BookingService/pkg/dbmetrics"
)

var (
	// ErrSerialization возвращается, когда PostgreSQL откатил транзакцию из-за
	// конфликта сериализации или дедлока. Операцию можно повторить.
	ErrSerialization = errors.New("txmanager: serialization failure")

	// ErrTransaction возвращается при ошибках начала/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")
)

const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Observer получает исход каждой транзакции (метрики)
type Observer interface {
	ObserveTransaction(isolation, outcome string)
}

// TransactionManager выполняет функции внутри транзакции
type TransactionManager struct {
	db       TxBeginner
	observer Observer
}

// NewTransactionManager создает менеджер транзакций. observer может быть nil.
func NewTransactionManager(db TxBeginner, observer Observer) *TransactionManager {
	return &TransactionManager{db: db, observer: observer}
}

// Do выполняет fn в транзакции с уровнем READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции с уровнем SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции (согласованный снимок)
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	isolation := opts.Isolation.String()

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		m.observe(isolation, "begin_error")
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			m.observe(isolation, "panic")
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		m.observe(isolation, "rollback")
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		m.observe(isolation, "commit_error")
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: commit: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	m.observe(isolation, "commit")
	return nil
}

func (m *TransactionManager) observe(isolation, outcome string) {
	if m.observer != nil {
		m.observer.ObserveTransaction(isolation, outcome)
	}
}

// classify помечает ошибку как ErrSerialization, если ее причина в конфликте сериализации
func classify(err error) error {
	if IsSerializationFailure(err) && !errors.Is(err, ErrSerialization) {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return err
}

// IsSerializationFailure проверяет, что ошибка - конфликт сериализации или дедлок PostgreSQL
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
	}
	return false
}
