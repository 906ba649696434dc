package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	capacityRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-StoreSlots/pkg/metrics"
)

// Service журнал вместимости слотов
// Счётчики меняются только условными SQL-выражениями репозитория, без чтения-изменения-записи в памяти
type Service struct {
	repo    LedgerRepository
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр журнала вместимости
func NewService(repo LedgerRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// GetCapacity строка журнала по слоту
func (s *Service) GetCapacity(ctx context.Context, key domain.SlotKey) (*domain.SlotCapacity, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	row, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
			return nil, ErrCapacityNotFound
		}
		s.logger.Error("GetCapacity: %s: %v", describe(key), err)
		return nil, fmt.Errorf("%w: GetCapacity: %v", ErrInternal, err)
	}
	return row, nil
}

// Reserve занимает место в слоте; maxOrders - вместимость слота по текущему расписанию
func (s *Service) Reserve(ctx context.Context, key domain.SlotKey, maxOrders int) (*domain.SlotCapacity, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	row, err := s.repo.Reserve(ctx, key, maxOrders)
	if err != nil {
		switch {
		case errors.Is(err, capacityRepo.ErrCapacityExceeded):
			s.metrics.IncReservation(metrics.ReservationRejected)
			s.logger.Info("Reserve: slot is full %s, maxOrders=%d", describe(key), maxOrders)
			return nil, ErrCapacityExceeded
		case errors.Is(err, capacityRepo.ErrExecQuery):
			s.metrics.IncReservation(metrics.ReservationFailed)
			s.logger.Warn("Reserve: storage error %s: %v", describe(key), err)
			return nil, fmt.Errorf("%w: Reserve: %v", ErrTransient, err)
		default:
			s.metrics.IncReservation(metrics.ReservationFailed)
			s.logger.Error("Reserve: %s: %v", describe(key), err)
			return nil, fmt.Errorf("%w: Reserve: %v", ErrInternal, err)
		}
	}

	s.metrics.IncReservation(metrics.ReservationReserved)
	s.logger.Info("Reserve: reserved %s, orders=%d/%d", describe(key), row.CurrentOrders, row.MaxOrders)
	return row, nil
}

// Release освобождает место в слоте
// Освобождение пустого слота не ошибка: счётчик остаётся нулевым, событие логируется как аномалия
func (s *Service) Release(ctx context.Context, key domain.SlotKey) error {
	if err := validateKey(key); err != nil {
		return err
	}

	released, err := s.repo.Release(ctx, key)
	if err != nil {
		s.metrics.IncRelease(metrics.ReleaseFailed)
		if errors.Is(err, capacityRepo.ErrExecQuery) {
			s.logger.Warn("Release: storage error %s: %v", describe(key), err)
			return fmt.Errorf("%w: Release: %v", ErrTransient, err)
		}
		s.logger.Error("Release: %s: %v", describe(key), err)
		return fmt.Errorf("%w: Release: %v", ErrInternal, err)
	}

	if !released {
		s.metrics.IncRelease(metrics.ReleaseClamped)
		s.metrics.IncReleaseAnomaly(key.StoreID)
		s.logger.Warn("Release: anomaly, nothing to release %s", describe(key))
		return nil
	}

	s.metrics.IncRelease(metrics.ReleaseReleased)
	s.logger.Info("Release: released %s", describe(key))
	return nil
}

func validateKey(key domain.SlotKey) error {
	if key.StoreID <= 0 {
		return fmt.Errorf("%w: storeId must be positive", ErrInvalidInput)
	}
	if key.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := key.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := key.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !key.StartTime.IsBefore(key.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}

func describe(key domain.SlotKey) string {
	return fmt.Sprintf("store=%d date=%s slot=%s-%s",
		key.StoreID, domain.FormatDate(key.Date), key.StartTime, key.EndTime)
}
