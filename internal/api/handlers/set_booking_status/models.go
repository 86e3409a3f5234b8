package set_booking_status

import changeStatus "github.com/m04kA/HS-BookingService/internal/usecase/change_status"

// SetStatusRequest HTTP request model
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetStatusRequest) ToUseCaseRequest(bookingID, actorID int64) *changeStatus.Request {
	return &changeStatus.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		Status:    r.Status,
	}
}
