package capacity

import (
	"context"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

// LedgerRepository журнал вместимости слотов
type LedgerRepository interface {
	Reserve(ctx context.Context, key domain.SlotKey, maxOrders int) (*domain.SlotCapacity, error)
	Release(ctx context.Context, key domain.SlotKey) (bool, error)
	Get(ctx context.Context, key domain.SlotKey) (*domain.SlotCapacity, error)
}

// Metrics метрики бронирований
type Metrics interface {
	IncReservation(result string)
	IncRelease(result string)
	IncReleaseAnomaly(storeID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
