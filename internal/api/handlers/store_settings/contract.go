package store_settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

type ScheduleService interface {
	GetSettings(ctx context.Context, storeID int64) (*domain.StoreSettings, error)
	UpdateSchedule(ctx context.Context, storeID int64, week domain.WeeklySchedule) (*domain.StoreSettings, error)
	UpdateHolidayDates(ctx context.Context, storeID int64, dates []time.Time) (*domain.StoreSettings, error)
	UpdateSpecialHours(ctx context.Context, storeID int64, overrides []domain.SpecialHoursOverride) (*domain.StoreSettings, error)
	SetPickupEnabled(ctx context.Context, storeID int64, enabled bool) (*domain.StoreSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
