package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

// Request модель запроса доступных дат
type Request struct {
	StoreID     int64                    // ID магазина
	Method      domain.FulfillmentMethod // pickup или delivery
	StartDate   time.Time                // Первая дата окна; пустая - сегодня
	HorizonDays int                      // Длина окна в днях; <= 0 - значение по умолчанию
	ZipCode     string                   // ZIP доставки (необязательный, только для delivery)
}

// Response модель ответа со списком дат
type Response struct {
	StoreID     int64
	Method      domain.FulfillmentMethod
	StartDate   time.Time
	HorizonDays int
	ZoneKey     string      // Зона доставки, если передан ZIP
	Dates       []time.Time // Даты хотя бы с одним свободным слотом, по возрастанию
}

// HorizonConfig ограничения окна поиска
type HorizonConfig struct {
	DefaultDays int
	MaxDays     int
}
