package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryBlockout дата, на которую доставка не выполняется
type DeliveryBlockout struct {
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// FeeZone тариф доставки для зоны
type FeeZone struct {
	ZoneKey             string
	Fee                 decimal.Decimal
	FreeDeliveryMinimum decimal.Decimal
	UpdatedAt           time.Time
}

// Validate проверяет тариф
func (z FeeZone) Validate() error {
	if z.ZoneKey == "" || len(z.ZoneKey) > MaxZoneKeyLength {
		return fmt.Errorf("%w: zoneKey must be 1..%d characters", ErrValidation, MaxZoneKeyLength)
	}
	if z.Fee.IsNegative() {
		return fmt.Errorf("%w: fee must not be negative", ErrValidation)
	}
	if z.FreeDeliveryMinimum.IsNegative() {
		return fmt.Errorf("%w: freeDeliveryMinimum must not be negative", ErrValidation)
	}
	return nil
}

// EffectiveFee стоимость доставки для суммы заказа; бесплатно, если сумма не меньше порога
func (z FeeZone) EffectiveFee(subtotal decimal.Decimal) (fee decimal.Decimal, isFree bool) {
	if subtotal.GreaterThanOrEqual(z.FreeDeliveryMinimum) {
		return decimal.Zero, true
	}
	return z.Fee, false
}
