package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

// SettingsRepository интерфейс для работы с настройками магазина
type SettingsRepository interface {
	Get(ctx context.Context, storeID int64) (*domain.StoreSettings, error)
	GetHolidayDates(ctx context.Context, storeID int64) ([]time.Time, error)
	GetSpecialHours(ctx context.Context, storeID int64) ([]domain.SpecialHoursOverride, error)
	EnsureSettings(ctx context.Context, storeID int64) error
	Touch(ctx context.Context, storeID int64) error
	SetPickupEnabled(ctx context.Context, storeID int64, enabled bool) error
	ReplaceWeeklySchedule(ctx context.Context, storeID int64, week domain.WeeklySchedule) error
	ReplaceHolidayDates(ctx context.Context, storeID int64, dates []time.Time) error
	ReplaceSpecialHours(ctx context.Context, storeID int64, overrides []domain.SpecialHoursOverride) error
}

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// GridInvalidator сброс закэшированных сеток слотов
type GridInvalidator interface {
	InvalidateStore(ctx context.Context, storeID int64) error
	InvalidateDates(ctx context.Context, storeID int64, dates []time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
