package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

// SettingsRepository источник настроек магазина
type SettingsRepository interface {
	Get(ctx context.Context, storeID int64) (*domain.StoreSettings, error)
}

// CapacityRepository источник счётчиков бронирований
type CapacityRepository interface {
	ListByDateRange(ctx context.Context, storeID int64, from, to time.Time) ([]domain.SlotCapacity, error)
}

// TransactionManager выполняет чтение в согласованном снимке
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// GridCache кэш сеток слотов
type GridCache interface {
	Get(ctx context.Context, storeID int64, date time.Time) (*domain.SlotGrid, bool, error)
	Set(ctx context.Context, storeID int64, date time.Time, grid *domain.SlotGrid) error
}

// Metrics метрики кэша
type Metrics interface {
	IncCacheLookup(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
