package get_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/HS-BookingService/internal/api/handlers"
	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/types"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidDuration   = "некорректная длительность"
)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability
// Query params: date (required, YYYY-MM-DD), time (HH:MM) и duration (минуты) вместе, опционально
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerIDStr := mux.Vars(r)["providerId"]
	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %s", providerIDStr)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	q := r.URL.Query()
	query := AvailabilityQuery{
		Date: q.Get("date"),
		Time: q.Get("time"),
	}
	if raw := q.Get("duration"); raw != "" {
		query.Duration, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/availability - Invalid duration: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}
	if msg := handlers.Validate(query); msg != "" {
		h.logger.Warn("GET /providers/{id}/availability - Validation failed: provider_id=%d, %s", providerID, msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	// Формат даты уже проверен валидатором
	date, _ := time.Parse(domain.DateFormat, query.Date)

	busy, err := h.checker.BusySlots(r.Context(), providerID, date)
	if err != nil {
		h.logger.Error("GET /providers/{id}/availability - Failed to get busy slots: provider_id=%d, error=%v", providerID, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	response := &AvailabilityResponse{
		ProviderID: providerID,
		Date:       query.Date,
		BusySlots:  FromDomainSlots(busy),
	}

	if query.Time != "" {
		available, err := h.checker.IsAvailable(r.Context(), providerID, date, types.TimeString(query.Time), query.Duration, nil)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/availability - Availability check failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondDomainError(w, err, "")
			return
		}
		response.Requested = &RequestedSlot{StartTime: query.Time, DurationMinutes: query.Duration}
		response.IsAvailable = &available
	}

	h.logger.Info("GET /providers/{id}/availability - Availability retrieved: provider_id=%d, date=%s, busy=%d",
		providerID, query.Date, len(busy))
	handlers.RespondJSON(w, http.StatusOK, response)
}
