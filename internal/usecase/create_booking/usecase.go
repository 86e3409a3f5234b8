package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/HS-BookingService/pkg/txmanager"
)

// maxReserveAttempts сколько раз выполняется резервирование при конфликте сериализации
const maxReserveAttempts = 2

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	users        UserDirectory
	availability AvailabilityChecker
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	users UserDirectory,
	availability AvailabilityChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		users:        users,
		availability: availability,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции,
// поэтому из двух конкурирующих запросов на пересекающиеся интервалы успешен только один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем заказчика
	customer, err := uc.users.GetUser(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}
	if customer.Role != domain.RoleCustomer {
		uc.logger.Warn("CreateBooking: user id=%d with role %s tried to create booking", customer.ID, customer.Role)
		return nil, ErrNotCustomer
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что услугу можно забронировать
	if err := validateService(service, req); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d rejected: %v", service.ID, err)
		return nil, err
	}

	// 5. Резервируем интервал. Конфликт сериализации означает, что параллельная
	// транзакция работала с тем же днем провайдера: повторяем один раз.
	var result *domain.Booking
	for attempt := 1; attempt <= maxReserveAttempts; attempt++ {
		result, err = uc.reserve(ctx, req, service)
		if err == nil || !errors.Is(err, txmanager.ErrSerialization) {
			break
		}
		uc.logger.Warn("CreateBooking: serialization failure for provider=%d on %s, attempt %d/%d: %v",
			service.ProviderID, req.Date.Format(domain.DateFormat), attempt, maxReserveAttempts, err)
	}

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = fmt.Errorf("%w: concurrent reservation: %v", ErrSlotNotAvailable, err)
		}
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.metrics.SlotConflict()
		}
		return nil, err
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result, service), nil
}

// reserve проверяет доступность интервала и сохраняет бронирование в одной транзакции
func (uc *UseCase) reserve(ctx context.Context, req *Request, service *domain.Service) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверяем пересечения с бронированиями провайдера (внутри транзакции строки дня блокируются)
		available, err := uc.availability.IsAvailable(txCtx, service.ProviderID, req.Date, req.StartTime, service.DurationMinutes, nil)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to check availability: %v", err)
			return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
		}

		if !available {
			uc.logger.Warn("CreateBooking: slot %s +%dmin on %s is taken for provider=%d",
				req.StartTime, service.DurationMinutes, req.Date.Format(domain.DateFormat), service.ProviderID)
			return ErrSlotNotAvailable
		}

		// 5.2. Создаем бронирование; длительность и сумма фиксируются из услуги
		booking := &domain.Booking{
			CustomerID:          req.CustomerID,
			ProviderID:          service.ProviderID,
			ServiceID:           service.ID,
			BookingDate:         req.Date,
			StartTime:           req.StartTime,
			DurationMinutes:     service.DurationMinutes,
			TotalAmount:         service.Price,
			Status:              domain.StatusPending,
			SpecialInstructions: req.SpecialInstructions,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	return result, err
}

func toResponse(b *domain.Booking, service *domain.Service) *Response {
	return &Response{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		ProviderID:          b.ProviderID,
		ServiceID:           b.ServiceID,
		BookingDate:         b.BookingDate,
		StartTime:           b.StartTime,
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		TotalAmount:         b.TotalAmount,
		SpecialInstructions: b.SpecialInstructions,
		ServiceName:         service.Name,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
