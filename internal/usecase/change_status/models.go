package change_status

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID int64  // ID бронирования
	ActorID   int64  // ID пользователя (из X-User-ID)
	Status    string // Целевой статус
}
