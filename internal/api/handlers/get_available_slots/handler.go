package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/HS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID   = "некорректный ID провайдера"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound     = "услуга не найдена у провайдера"
	msgServiceNotAvailable = "услуга недоступна для бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/services/{serviceId}/slots
// Query params: date (required, YYYY-MM-DD), free (optional, "true" - только свободные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/services/{id}/slots - Invalid provider ID: %s", vars["providerId"])
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /providers/{id}/services/{id}/slots - Invalid service ID: %s", vars["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/services/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(providerID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/services/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	onlyFree, _ := strconv.ParseBool(r.URL.Query().Get("free"))

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /providers/{id}/services/{id}/slots - Service not found: provider_id=%d, service_id=%d",
				providerID, serviceID)
			handlers.RespondDomainError(w, err, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceUnavailable):
			h.logger.Warn("GET /providers/{id}/services/{id}/slots - Service not available: service_id=%d", serviceID)
			handlers.RespondDomainError(w, err, msgServiceNotAvailable)

		default:
			h.logger.Error("GET /providers/{id}/services/{id}/slots - Failed to get slots: provider_id=%d, service_id=%d, error=%v",
				providerID, serviceID, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	response := FromUseCaseResponse(result, onlyFree)

	h.logger.Info("GET /providers/{id}/services/{id}/slots - Slots retrieved successfully: provider_id=%d, service_id=%d, slots_count=%d",
		providerID, serviceID, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
