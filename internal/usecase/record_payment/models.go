package record_payment

import "github.com/shopspring/decimal"

// Request модель запроса на запись платежа
type Request struct {
	BookingID     int64           // ID бронирования
	Amount        decimal.Decimal // Сумма платежа
	TransactionID string          // Идентификатор транзакции платежного шлюза
	Status        string          // Статус платежа, по умолчанию SUCCEEDED
}

// UpdateStatusRequest модель запроса на смену статуса платежа
type UpdateStatusRequest struct {
	TransactionID string // Идентификатор транзакции платежного шлюза
	Status        string // Новый статус платежа
}
