package get_delivery_fee

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery/models"
)

type DeliveryFeeResolver interface {
	GetDeliveryFee(ctx context.Context, zip string, subtotal decimal.Decimal) (*models.FeeQuote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
