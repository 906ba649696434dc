package validate_and_reserve

import (
	"fmt"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

const maxOrderRefLength = 128

// validateRequest валидирует входные данные и подставляет способ получения по умолчанию
func validateRequest(req *Request) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Method == "" {
		req.Method = domain.MethodPickup
	}
	if !req.Method.IsValid() {
		return fmt.Errorf("%w: method must be %q or %q", ErrInvalidInput, domain.MethodPickup, domain.MethodDelivery)
	}

	if len(req.OrderRef) > maxOrderRefLength {
		return fmt.Errorf("%w: orderRef must be at most %d characters", ErrInvalidInput, maxOrderRefLength)
	}

	return nil
}
