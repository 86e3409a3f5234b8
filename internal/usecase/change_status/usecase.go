package change_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HS-BookingService/internal/service/access"
)

// UseCase use case смены статуса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	users       UserDirectory
	payments    PaymentChecker
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	users UserDirectory,
	payments PaymentChecker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		users:       users,
		payments:    payments,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute переводит бронирование в новый статус.
// Чтение, проверки и запись выполняются в одной транзакции под блокировкой строки бронирования,
// поэтому параллельные переходы одного бронирования выполняются по очереди.
// Порядок проверок: бронирование существует, статус известен, переход есть в графе,
// пользователь имеет право, для COMPLETED бронирование оплачено.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("ChangeStatus: booking=%d, actor=%d, status=%s", req.BookingID, req.ActorID, req.Status)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var (
		result *domain.Booking
		from   domain.BookingStatus
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Бронирование (строка блокируется до конца транзакции)
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ChangeStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ChangeStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		from = booking.Status

		// 2. Целевой статус
		target, err := domain.ParseBookingStatus(req.Status)
		if err != nil {
			uc.logger.Warn("ChangeStatus: %v", err)
			return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
		}

		// 3. Граф переходов
		if !booking.Status.CanTransitionTo(target) {
			uc.logger.Warn("ChangeStatus: transition %s -> %s not allowed for booking id=%d",
				booking.Status, target, booking.ID)
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, booking.Status, target)
		}

		// 4. Права пользователя
		if err := uc.authorize(txCtx, req.ActorID, booking, target); err != nil {
			return err
		}

		// 5. Завершение требует полной оплаты
		if target == domain.StatusCompleted {
			paid, err := uc.payments.IsPaymentComplete(txCtx, booking.ID)
			if err != nil {
				uc.logger.Error("ChangeStatus: failed to check payments for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to check payments: %w", ErrInternal, err)
			}
			if !paid {
				uc.logger.Warn("ChangeStatus: booking id=%d is not paid in full (total %s)",
					booking.ID, booking.TotalAmount.StringFixed(domain.MoneyScale))
				return ErrPaymentIncomplete
			}
		}

		// 6. Сохраняем новый статус
		updated, err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, target)
		if err != nil {
			uc.logger.Error("ChangeStatus: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.StatusTransition(string(from), string(result.Status))
	uc.logger.Info("ChangeStatus: booking id=%d moved %s -> %s", result.ID, from, result.Status)

	return result, nil
}

func (uc *UseCase) authorize(ctx context.Context, actorID int64, booking *domain.Booking, target domain.BookingStatus) error {
	actor, err := uc.users.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("ChangeStatus: unknown user id=%d", actorID)
			return fmt.Errorf("%w: unknown user %d", ErrAccessDenied, actorID)
		}
		uc.logger.Error("ChangeStatus: failed to get user id=%d: %v", actorID, err)
		return fmt.Errorf("%w: failed to get user: %w", ErrInternal, err)
	}

	op := access.OperationFor(target)
	if d := access.Decide(op, actor, booking); !d.Allowed {
		uc.logger.Warn("ChangeStatus: user id=%d denied to %s booking id=%d: %s", actor.ID, op, booking.ID, d.Reason)
		return fmt.Errorf("%w: %s", ErrAccessDenied, d.Reason)
	}

	return nil
}
