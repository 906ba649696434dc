package delivery

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	deliveryRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/delivery"
)

// Repository интерфейс для работы с блокировками и тарифами доставки
type Repository interface {
	ListBlockouts(ctx context.Context, filter deliveryRepo.BlockoutFilter) ([]domain.DeliveryBlockout, error)
	UpsertBlockout(ctx context.Context, blockout domain.DeliveryBlockout) (*domain.DeliveryBlockout, error)
	DeleteBlockout(ctx context.Context, date time.Time) error
	GetFeeZone(ctx context.Context, zoneKey string) (*domain.FeeZone, error)
	ListFeeZones(ctx context.Context) ([]domain.FeeZone, error)
	UpsertFeeZone(ctx context.Context, zone domain.FeeZone) (*domain.FeeZone, error)
	DeleteFeeZone(ctx context.Context, zoneKey string) error
}

// ZoneResolver справочник ZIP -> зона
type ZoneResolver interface {
	ZoneFor(zip string) (string, error)
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
