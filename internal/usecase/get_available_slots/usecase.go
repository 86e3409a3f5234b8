package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// UseCase use case для получения свободных слотов провайдера под конкретную услугу
type UseCase struct {
	serviceRepo  ServiceRepository
	availability AvailabilityChecker
	timeProvider TimeProvider
	stepMinutes  int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availability AvailabilityChecker,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		stepMinutes:  domain.DefaultSlotStepMinutes,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, service=%d, date=%s",
		req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу, она должна принадлежать провайдеру
	service, err := uc.serviceRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.ProviderID != req.ProviderID {
		uc.logger.Warn("GetAvailableSlots: service id=%d belongs to provider id=%d, not %d",
			req.ServiceID, service.ProviderID, req.ProviderID)
		return nil, ErrServiceNotFound
	}
	if !service.IsAvailable {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not available", req.ServiceID)
		return nil, ErrServiceUnavailable
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Error("GetAvailableSlots: service id=%d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration %d", ErrInvalidInput, service.DurationMinutes)
	}

	// 3. Получаем занятые интервалы провайдера
	busy, err := uc.availability.BusySlots(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy slots: %w", ErrInternal, err)
	}

	// 4. Строим сетку слотов
	slots := generateSlots(service.DurationMinutes, uc.stepMinutes, busy, req.Date, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%d, service=%d, date=%s (busy=%d)",
		len(slots), req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), len(busy))

	return &Response{
		Date:            req.Date,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		BusySlots:       busy,
		Slots:           slots,
	}, nil
}
