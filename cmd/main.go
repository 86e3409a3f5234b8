package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/HS-BookingService/internal/api"
	"github.com/m04kA/HS-BookingService/internal/config"
	userServiceClient "github.com/m04kA/HS-BookingService/internal/integrations/userservice"
	"github.com/m04kA/HS-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/HS-BookingService/internal/service/bookings"
	paymentsService "github.com/m04kA/HS-BookingService/internal/service/payments"
	changeStatusUC "github.com/m04kA/HS-BookingService/internal/usecase/change_status"
	createBookingUC "github.com/m04kA/HS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/HS-BookingService/internal/usecase/get_available_slots"
	recordPaymentUC "github.com/m04kA/HS-BookingService/internal/usecase/record_payment"
	"github.com/m04kA/HS-BookingService/pkg/logger"
	"github.com/m04kA/HS-BookingService/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting HS-BookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	var store *storage
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store, err = openMemory(cfg, log)
	default:
		store, err = openPostgres(cfg, metricsCollector, stopMetricsCh, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize %s storage: %v", cfg.Storage.Driver, err)
	}
	defer store.close()

	// Источник пользователей
	var users userDirectory = store.catalog
	if cfg.UserService.URL != "" {
		users = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("Users are resolved via UserService (%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	} else {
		log.Info("Users are resolved from storage")
	}

	// Инициализируем сервисы
	checker := availability.NewChecker(store.bookings)
	paymentSvc := paymentsService.NewService(store.bookings, store.payments, users, store.txManager, log)
	bookingSvc := bookingsService.NewService(store.bookings, users, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.catalog,
		users,
		checker,
		store.txManager,
		metricsCollector,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		store.bookings,
		users,
		paymentSvc,
		store.txManager,
		metricsCollector,
		log,
	)
	recordPaymentUseCase := recordPaymentUC.NewUseCase(
		store.bookings,
		store.payments,
		store.txManager,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.catalog,
		checker,
		log,
	)

	// Настраиваем роутер
	opts := api.Options{HealthCheck: store.healthCheck}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		log.Info("HTTP metrics middleware enabled, endpoint exposed at %s", cfg.Metrics.Path)
	}

	router := api.NewRouter(api.Services{
		CreateBooking:  createBookingUseCase,
		ChangeStatus:   changeStatusUseCase,
		RecordPayment:  recordPaymentUseCase,
		AvailableSlots: getAvailableSlotsUseCase,
		Availability:   checker,
		Bookings:       bookingSvc,
		Payments:       paymentSvc,
	}, log, opts)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
