package release_slot

import (
	"context"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

type CapacityLedger interface {
	Release(ctx context.Context, key domain.SlotKey) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
