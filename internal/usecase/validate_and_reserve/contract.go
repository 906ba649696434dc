package validate_and_reserve

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/integrations/orderlog"
	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// SettingsProvider интерфейс получения настроек магазина
type SettingsProvider interface {
	GetSettings(ctx context.Context, storeID int64) (*domain.StoreSettings, error)
}

// SlotGate интерфейс проверки выбранного слота
type SlotGate interface {
	Validate(ctx context.Context, storeID int64, date time.Time, start, end types.TimeString) (*domain.TimeSlot, error)
}

// CapacityLedger интерфейс журнала вместимости
type CapacityLedger interface {
	Reserve(ctx context.Context, key domain.SlotKey, maxOrders int) (*domain.SlotCapacity, error)
}

// DeliveryBlockouts интерфейс проверки блокировок доставки
type DeliveryBlockouts interface {
	IsBlocked(ctx context.Context, date time.Time) (bool, error)
}

// OrderLog интерфейс журнала заказов
type OrderLog interface {
	Append(ctx context.Context, entry orderlog.Entry) error
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
