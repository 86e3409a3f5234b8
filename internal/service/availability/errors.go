package availability

import (
	"fmt"

	"github.com/m04kA/HS-BookingService/internal/domain"
)

var (
	// ErrInvalidDuration возвращается, когда длительность не положительная
	ErrInvalidDuration = fmt.Errorf("availability: duration must be positive: %w", domain.ErrValidation)

	// ErrInvalidStartTime возвращается при некорректном времени начала
	ErrInvalidStartTime = fmt.Errorf("availability: invalid start time: %w", domain.ErrValidation)

	// ErrCrossesMidnight возвращается, когда интервал выходит за пределы дня
	ErrCrossesMidnight = fmt.Errorf("availability: interval crosses midnight: %w", domain.ErrValidation)
)
