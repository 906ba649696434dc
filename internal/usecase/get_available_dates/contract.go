package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/slots"
)

// SettingsProvider интерфейс получения настроек магазина
type SettingsProvider interface {
	GetSettings(ctx context.Context, storeID int64) (*domain.StoreSettings, error)
}

// SlotGenerator интерфейс генератора слотов
type SlotGenerator interface {
	GenerateRange(ctx context.Context, storeID int64, dates []time.Time) ([]slots.DaySlots, error)
}

// DeliveryService интерфейс проверок доставки
type DeliveryService interface {
	ResolveZone(ctx context.Context, zip string) (string, error)
	BlockedDates(ctx context.Context, from, to time.Time) (map[time.Time]struct{}, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
