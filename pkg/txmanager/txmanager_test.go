package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HS-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
	opts     []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.opts = append(b.opts, opts)
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

type recordingObserver struct {
	outcomes []string
}

func (o *recordingObserver) ObserveTransaction(isolation, outcome string) {
	o.outcomes = append(o.outcomes, isolation+"/"+outcome)
}

func TestTransactionManager_Commit(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	obs := &recordingObserver{}
	m := NewTransactionManager(db, obs)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	require.Len(t, db.opts, 1)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
	assert.Equal(t, []string{"Serializable/commit"}, obs.outcomes)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db, nil)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrSerialization))
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestTransactionManager_NestedJoinsOuter(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db, nil)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoReadOnly(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Len(t, db.opts, 1)
}

func TestTransactionManager_ReadOnlyOptions(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db, nil)

	require.NoError(t, m.DoReadOnly(context.Background(), func(context.Context) error { return nil }))
	require.Len(t, db.opts, 1)
	assert.True(t, db.opts[0].ReadOnly)
	assert.Equal(t, sql.LevelRepeatableRead, db.opts[0].Isolation)
}

func TestTransactionManager_SerializationFailures(t *testing.T) {
	t.Run("fn returns 40001", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(db, nil)

		err := m.DoSerializable(context.Background(), func(context.Context) error {
			return fmt.Errorf("insert: %w", &pq.Error{Code: "40001"})
		})

		assert.ErrorIs(t, err, ErrSerialization)
	})

	t.Run("commit returns 40P01", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40P01"}}}
		obs := &recordingObserver{}
		m := NewTransactionManager(db, obs)

		err := m.DoSerializable(context.Background(), func(context.Context) error { return nil })

		assert.ErrorIs(t, err, ErrSerialization)
		assert.Equal(t, []string{"Serializable/commit_error"}, obs.outcomes)
	})

	t.Run("commit returns other error", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("conn reset")}}
		m := NewTransactionManager(db, nil)

		err := m.Do(context.Background(), func(context.Context) error { return nil })

		assert.ErrorIs(t, err, ErrTransaction)
		assert.False(t, errors.Is(err, ErrSerialization))
	})
}

func TestTransactionManager_BeginError(t *testing.T) {
	db := &fakeBeginner{beginErr: errors.New("pool exhausted")}
	m := NewTransactionManager(db, nil)
	called := false

	err := m.Do(context.Background(), func(context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrTransaction)
	assert.False(t, called)
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "serialization", err: &pq.Error{Code: "40001"}, want: true},
		{name: "deadlock", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "sentinel", err: fmt.Errorf("wrapped: %w", ErrSerialization), want: true},
		{name: "plain", err: errors.New("x"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationFailure(tt.err))
		})
	}
}
