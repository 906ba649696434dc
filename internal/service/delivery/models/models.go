package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeQuote стоимость доставки для суммы заказа
type FeeQuote struct {
	ZoneKey             string
	Fee                 decimal.Decimal
	FreeDeliveryMinimum decimal.Decimal
	IsFree              bool
}

// CreateBlockoutRequest запрос на блокировку доставки на дату
type CreateBlockoutRequest struct {
	Date   time.Time `validate:"required"`
	Reason *string   `validate:"omitempty,max=255"`
}

// UpsertFeeZoneRequest запрос на создание или изменение тарифа зоны
type UpsertFeeZoneRequest struct {
	ZoneKey             string `validate:"required,max=64,lowercase"`
	Fee                 decimal.Decimal
	FreeDeliveryMinimum decimal.Decimal
}
