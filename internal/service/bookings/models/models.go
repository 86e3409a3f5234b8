package models

import (
	"time"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований пользователя.
// Набор бронирований определяется ролью пользователя.
type ListBookingsRequest struct {
	UserID int64      `json:"userId"`
	Status *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	Date   *time.Time `json:"date,omitempty"`   // Фильтр по дате (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                  int64   `json:"id"`
	CustomerID          int64   `json:"customerId"`
	ProviderID          int64   `json:"providerId"`
	ServiceID           int64   `json:"serviceId"`
	BookingDate         string  `json:"bookingDate"` // "2026-10-15"
	StartTime           string  `json:"startTime"`   // "10:00"
	EndTime             string  `json:"endTime"`     // "11:00"
	DurationMinutes     int     `json:"durationMinutes"`
	Status              string  `json:"status"`
	TotalAmount         string  `json:"totalAmount"` // "50.00"
	SpecialInstructions *string `json:"specialInstructions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"bookingId"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PaymentListResponse ответ со списком платежей бронирования
type PaymentListResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	PaidTotal string            `json:"paidTotal"` // сумма успешных платежей
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		ProviderID:          b.ProviderID,
		ServiceID:           b.ServiceID,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		StartTime:           b.StartTime.String(),
		EndTime:             b.Slot().EndTime().String(),
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		TotalAmount:         b.TotalAmount.StringFixed(domain.MoneyScale),
		SpecialInstructions: b.SpecialInstructions,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainPayment конвертирует платеж в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount.StringFixed(domain.MoneyScale),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromDomainPaymentList конвертирует платежи бронирования в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments:  make([]PaymentResponse, 0, len(payments)),
		PaidTotal: domain.SucceededTotal(payments).StringFixed(domain.MoneyScale),
	}

	for _, p := range payments {
		if pr := FromDomainPayment(p); pr != nil {
			resp.Payments = append(resp.Payments, *pr)
		}
	}

	return resp
}
