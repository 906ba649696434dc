package gate

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

// SlotGenerator генератор слотов
type SlotGenerator interface {
	GenerateSlotsFresh(ctx context.Context, storeID int64, date time.Time) ([]domain.TimeSlot, error)
}

// TimeProvider интерфейс для получения текущего времени
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
