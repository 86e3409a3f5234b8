package record_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/HS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/payment"
)

// UseCase use case записи платежей.
// Все изменения платежей бронирования выполняются под блокировкой строки бронирования,
// поэтому сумма успешных платежей не превышает стоимость даже при параллельных вызовах.
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute записывает платеж по бронированию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Payment, error) {
	uc.logger.Info("RecordPayment: booking=%d, amount=%s, transaction=%s, status=%s",
		req.BookingID, req.Amount.String(), req.TransactionID, req.Status)

	status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Payment

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Бронирование (строка блокируется до конца транзакции)
		booking, err := uc.lockBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if booking.Status == domain.StatusCancelled {
			uc.logger.Warn("RecordPayment: booking id=%d is cancelled", booking.ID)
			return ErrBookingCancelled
		}

		// 2. Идентификатор транзакции шлюза уникален
		if _, err := uc.paymentRepo.GetByTransactionID(txCtx, req.TransactionID); err == nil {
			uc.logger.Warn("RecordPayment: transaction %s already recorded", req.TransactionID)
			return fmt.Errorf("%w: %s", ErrDuplicateTransaction, req.TransactionID)
		} else if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Error("RecordPayment: failed to look up transaction %s: %v", req.TransactionID, err)
			return fmt.Errorf("%w: failed to look up transaction: %w", ErrInternal, err)
		}

		// 3. Успешный платеж не должен превышать остаток
		if status == domain.PaymentSucceeded {
			if err := uc.checkBound(txCtx, booking, req.TransactionID, req.Amount); err != nil {
				return err
			}
		}

		// 4. Сохраняем платеж
		created, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID:     booking.ID,
			Amount:        req.Amount,
			Status:        status,
			TransactionID: req.TransactionID,
		})
		if err != nil {
			if errors.Is(err, paymentRepo.ErrDuplicateTransaction) {
				return fmt.Errorf("%w: %s", ErrDuplicateTransaction, req.TransactionID)
			}
			uc.logger.Error("RecordPayment: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentRecorded(string(result.Status))
	uc.logger.Info("RecordPayment: payment id=%d recorded for booking id=%d", result.ID, result.BookingID)

	return result, nil
}

// UpdatePaymentStatus меняет статус платежа по идентификатору транзакции шлюза.
// Допустимые переходы: PENDING -> SUCCEEDED | FAILED, SUCCEEDED -> REFUNDED.
// Повторный запрос с текущим статусом возвращает платеж без изменений.
func (uc *UseCase) UpdatePaymentStatus(ctx context.Context, req *UpdateStatusRequest) (*domain.Payment, error) {
	uc.logger.Info("UpdatePaymentStatus: transaction=%s, status=%s", req.TransactionID, req.Status)

	if err := validateTransactionID(req.TransactionID); err != nil {
		return nil, err
	}

	target, err := domain.ParsePaymentStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdatePaymentStatus: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		result  *domain.Payment
		changed bool
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Находим платеж, чтобы узнать бронирование
		payment, err := uc.getPayment(txCtx, req.TransactionID)
		if err != nil {
			return err
		}

		// 2. Блокируем бронирование и перечитываем платеж под блокировкой
		booking, err := uc.lockBooking(txCtx, payment.BookingID)
		if err != nil {
			return err
		}
		payment, err = uc.getPayment(txCtx, req.TransactionID)
		if err != nil {
			return err
		}

		if payment.Status == target {
			result = payment
			return nil
		}

		if !payment.Status.CanTransitionTo(target) {
			uc.logger.Warn("UpdatePaymentStatus: transition %s -> %s not allowed for payment id=%d",
				payment.Status, target, payment.ID)
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, payment.Status, target)
		}

		// 3. Платеж становится успешным: проверяем остаток
		if target == domain.PaymentSucceeded {
			if err := uc.checkBound(txCtx, booking, req.TransactionID, payment.Amount); err != nil {
				return err
			}
		}

		updated, err := uc.paymentRepo.UpdateStatus(txCtx, payment.ID, target)
		if err != nil {
			uc.logger.Error("UpdatePaymentStatus: failed to update payment id=%d: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to update payment: %w", ErrInternal, err)
		}

		result = updated
		changed = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	if changed {
		uc.metrics.PaymentRecorded(string(result.Status))
		uc.logger.Info("UpdatePaymentStatus: payment id=%d is now %s", result.ID, result.Status)
	}

	return result, nil
}

func (uc *UseCase) lockBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RecordPayment: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RecordPayment: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) getPayment(ctx context.Context, transactionID string) (*domain.Payment, error) {
	payment, err := uc.paymentRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("UpdatePaymentStatus: transaction %s not found", transactionID)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("UpdatePaymentStatus: failed to get transaction %s: %v", transactionID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %w", ErrInternal, err)
	}
	return payment, nil
}

// checkBound проверяет, что сумма успешных платежей вместе с amount не превышает стоимость бронирования
func (uc *UseCase) checkBound(ctx context.Context, booking *domain.Booking, ref string, amount decimal.Decimal) error {
	payments, err := uc.paymentRepo.GetByBookingID(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("RecordPayment: failed to get payments for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to get payments: %w", ErrInternal, err)
	}

	paid := domain.SucceededTotal(payments)
	if paid.Add(amount).GreaterThan(booking.TotalAmount) {
		uc.logger.Warn("RecordPayment: %s would overpay booking id=%d (paid %s, amount %s, total %s)",
			ref, booking.ID, paid.StringFixed(domain.MoneyScale), amount.StringFixed(domain.MoneyScale),
			booking.TotalAmount.StringFixed(domain.MoneyScale))
		return fmt.Errorf("%w: paid %s + %s > %s", ErrOverPayment,
			paid.StringFixed(domain.MoneyScale), amount.StringFixed(domain.MoneyScale),
			booking.TotalAmount.StringFixed(domain.MoneyScale))
	}

	return nil
}
