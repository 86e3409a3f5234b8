// Package api собирает HTTP маршруты сервиса бронирований
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/get_booking"
	getBookingPaymentsHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/get_booking_payments"
	listBookingsHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/list_bookings"
	recordPaymentHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/record_payment"
	setBookingStatusHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/set_booking_status"
	updatePaymentStatusHandler "github.com/m04kA/HS-BookingService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/HS-BookingService/internal/api/middleware"
	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/HS-BookingService/internal/service/bookings"
	paymentsService "github.com/m04kA/HS-BookingService/internal/service/payments"
	changeStatusUC "github.com/m04kA/HS-BookingService/internal/usecase/change_status"
	createBookingUC "github.com/m04kA/HS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/HS-BookingService/internal/usecase/get_available_slots"
	recordPaymentUC "github.com/m04kA/HS-BookingService/internal/usecase/record_payment"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Services use cases и сервисы, которые обслуживают маршруты
type Services struct {
	CreateBooking  *createBookingUC.UseCase
	ChangeStatus   *changeStatusUC.UseCase
	RecordPayment  *recordPaymentUC.UseCase
	AvailableSlots *getAvailableSlotsUC.UseCase
	Availability   *availability.Checker
	Bookings       *bookingsService.Service
	Payments       *paymentsService.Service
}

// Options необязательные части роутера
type Options struct {
	// Metrics включает HTTP метрики и эндпоинт MetricsPath
	Metrics     middleware.HTTPCollector
	MetricsPath string

	// HealthCheck проверяет хранилище для /healthz
	HealthCheck func(ctx context.Context) error
}

// NewRouter создает роутер со всеми маршрутами API
func NewRouter(svc Services, log Logger, opts Options) *mux.Router {
	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(svc.CreateBooking, log)
	getBooking := getBookingHandler.NewHandler(svc.Bookings, log)
	listBookings := listBookingsHandler.NewHandler(svc.Bookings, log)
	setBookingStatus := setBookingStatusHandler.NewHandler(svc.ChangeStatus, log)
	cancelBooking := cancelBookingHandler.NewHandler(svc.ChangeStatus, log)
	getBookingPayments := getBookingPaymentsHandler.NewHandler(svc.Payments, log)
	getAvailability := getAvailabilityHandler.NewHandler(svc.Availability, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(svc.AvailableSlots, log)
	recordPayment := recordPaymentHandler.NewHandler(svc.RecordPayment, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(svc.RecordPayment, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		if opts.MetricsPath != "" {
			r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
		}
	}

	r.HandleFunc("/healthz", healthz(opts.HealthCheck, log)).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятость провайдера на дату и проверка интервала
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Сетка слотов под конкретную услугу провайдера
	api.HandleFunc("/providers/{providerId}/services/{serviceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (колбэки платежного шлюза)
	// ============================================================

	internal := api.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/bookings/{bookingId}/payments", recordPayment.Handle).Methods(http.MethodPost)
	internal.HandleFunc("/payments/{transactionId}", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", setBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payments", getBookingPayments.Handle).Methods(http.MethodGet)

	return r
}

func healthz(check func(ctx context.Context) error, log Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				log.Error("GET /healthz - Storage check failed: %v", err)
				handlers.RespondError(w, http.StatusServiceUnavailable, domain.KindStoreUnavailable, "хранилище недоступно")
				return
			}
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
