package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

type SlotGenerator interface {
	GenerateSlots(ctx context.Context, storeID int64, date time.Time) ([]domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
