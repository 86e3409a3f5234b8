package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HS-BookingService/internal/service/access"
	"github.com/m04kA/HS-BookingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	users       UserDirectory
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	users UserDirectory,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		users:       users,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа: заказчик видит свои бронирования, провайдер - назначенные ему,
// администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if d := access.Decide(access.OpView, user, booking); !d.Allowed {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d: %s", userID, id, d.Reason)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования пользователя в зависимости от роли:
// CUSTOMER - свои, новые первыми; PROVIDER - назначенные ему, по расписанию;
// ADMIN - все, по расписанию. Опционально фильтрует по статусу и дате.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d, status=%v, date=%v", req.UserID, req.Status, req.Date)

	user, err := s.getUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{Date: req.Date}

	// Конвертируем статус из строки в domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	switch user.Role {
	case domain.RoleCustomer:
		filter.CustomerID = &user.ID
		filter.OrderBy = domain.OrderByCreatedDesc
	case domain.RoleProvider:
		filter.ProviderID = &user.ID
		filter.OrderBy = domain.OrderBySchedule
	case domain.RoleAdmin:
		filter.OrderBy = domain.OrderBySchedule
	default:
		s.logger.Warn("List: user=%d has unknown role %s", user.ID, user.Role)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// getUser получает пользователя; неизвестный пользователь не имеет доступа
func (s *Service) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("getUser: user id=%d not found", userID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("getUser: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: getUser - failed to get user: %v", ErrInternal, err)
	}
	return user, nil
}
