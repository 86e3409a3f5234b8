package create_booking

import (
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
	createBooking "github.com/m04kA/HS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model. Заказчик берется из X-User-ID.
type CreateBookingRequest struct {
	ServiceID           int64   `json:"serviceId" validate:"required,gt=0"`
	BookingDate         string  `json:"bookingDate" validate:"required,date"` // "2026-10-15"
	StartTime           string  `json:"startTime" validate:"required,hhmm"`   // "10:00"
	SpecialInstructions *string `json:"specialInstructions,omitempty" validate:"omitempty,max=1000"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  int64   `json:"id"`
	CustomerID          int64   `json:"customerId"`
	ProviderID          int64   `json:"providerId"`
	ServiceID           int64   `json:"serviceId"`
	ServiceName         string  `json:"serviceName"`
	BookingDate         string  `json:"bookingDate"`
	StartTime           string  `json:"startTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Status              string  `json:"status"`
	TotalAmount         string  `json:"totalAmount"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:          customerID,
		ServiceID:           r.ServiceID,
		Date:                bookingDate,
		StartTime:           startTime,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                  resp.ID,
		CustomerID:          resp.CustomerID,
		ProviderID:          resp.ProviderID,
		ServiceID:           resp.ServiceID,
		ServiceName:         resp.ServiceName,
		BookingDate:         resp.BookingDate.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		TotalAmount:         resp.TotalAmount.StringFixed(domain.MoneyScale),
		SpecialInstructions: resp.SpecialInstructions,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
