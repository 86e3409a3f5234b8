package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/HS-BookingService/internal/config"
	"github.com/m04kA/HS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/HS-BookingService/internal/infra/storage/memory"
	paymentRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/payment"
	"github.com/m04kA/HS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HS-BookingService/pkg/logger"
	"github.com/m04kA/HS-BookingService/pkg/metrics"
	"github.com/m04kA/HS-BookingService/pkg/txmanager"
)

type bookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

type paymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error)
}

type catalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// userDirectory источник пользователей: UserService или таблица users
type userDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	bookings  bookingRepository
	payments  paymentRepository
	catalog   catalogRepository
	txManager transactionManager

	healthCheck func(ctx context.Context) error
	close       func()
}

// openPostgres подключается к PostgreSQL. Если метрики включены, запросы и пул
// соединений наблюдаются до закрытия stopMetricsCh.
func openPostgres(cfg *config.Config, m *metrics.Metrics, stopMetricsCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		wrappedDB *dbmetrics.DB
		txMgr     *txmanager.TransactionManager
	)
	if m != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, m, cfg.Database.DBName, stopMetricsCh)
		txMgr = txmanager.NewTransactionManager(wrappedDB, m)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
		txMgr = txmanager.NewTransactionManager(wrappedDB, nil)
	}

	return &storage{
		bookings:    bookingRepo.NewRepository(wrappedDB),
		payments:    paymentRepo.NewRepository(wrappedDB),
		catalog:     catalogRepo.NewRepository(wrappedDB),
		txManager:   txMgr,
		healthCheck: db.PingContext,
		close:       func() { db.Close() },
	}, nil
}

// openMemory создает хранилище в памяти и заполняет его из seed файла
func openMemory(cfg *config.Config, log *logger.Logger) (*storage, error) {
	store := memory.NewStore()

	if cfg.Storage.SeedFile != "" {
		if err := store.LoadSeedFile(cfg.Storage.SeedFile); err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		log.Info("Memory storage seeded from %s", cfg.Storage.SeedFile)
	}
	log.Warn("Using in-memory storage: data is lost on restart")

	return &storage{
		bookings:  store.Bookings(),
		payments:  store.Payments(),
		catalog:   store.Catalog(),
		txManager: store.TxManager(),
		close:     func() {},
	}, nil
}
