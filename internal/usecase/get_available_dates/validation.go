package get_available_dates

import (
	"fmt"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeId must be positive", ErrInvalidInput)
	}

	if !req.Method.IsValid() {
		return fmt.Errorf("%w: method must be %q or %q", ErrInvalidInput, domain.MethodPickup, domain.MethodDelivery)
	}

	return nil
}

// normalizeHorizon подставляет значение по умолчанию и обрезает по максимуму
func normalizeHorizon(requested int, cfg HorizonConfig) int {
	defaultDays := cfg.DefaultDays
	if defaultDays <= 0 {
		defaultDays = domain.DefaultHorizonDays
	}
	maxDays := cfg.MaxDays
	if maxDays <= 0 {
		maxDays = domain.MaxHorizonDays
	}

	days := requested
	if days <= 0 {
		days = defaultDays
	}
	if days > maxDays {
		days = maxDays
	}
	return days
}
