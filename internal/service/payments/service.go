package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HS-BookingService/internal/service/access"
)

// Service сервис чтения платежей
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	users       UserDirectory
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	users UserDirectory,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		users:       users,
		txManager:   txManager,
		logger:      logger,
	}
}

// IsPaymentComplete возвращает true, если сумма успешных платежей покрывает стоимость бронирования.
// Бронирование и платежи читаются из одного снимка; внутри транзакции вызывающего
// чтение присоединяется к ней.
func (s *Service) IsPaymentComplete(ctx context.Context, bookingID int64) (bool, error) {
	var complete bool

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		payments, err := s.paymentRepo.GetByBookingID(txCtx, bookingID)
		if err != nil {
			s.logger.Error("IsPaymentComplete: failed to get payments for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to get payments: %w", ErrInternal, err)
		}

		complete = domain.IsPaidInFull(booking.TotalAmount, payments)
		return nil
	})
	if err != nil {
		return false, err
	}

	return complete, nil
}

// GetBookingPayments возвращает платежи бронирования, если пользователь может его просматривать
func (s *Service) GetBookingPayments(ctx context.Context, bookingID, actorID int64) ([]*domain.Payment, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	actor, err := s.users.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetBookingPayments: unknown user id=%d", actorID)
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if err := access.Check(access.OpView, actor, booking); err != nil {
		s.logger.Warn("GetBookingPayments: user id=%d denied for booking id=%d: %v", actorID, bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	payments, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetBookingPayments: failed to get payments for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get payments: %v", ErrInternal, err)
	}

	return payments, nil
}

func (s *Service) getBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("payments: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}
