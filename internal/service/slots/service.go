package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/storesettings"
)

// DaySlots слоты одной даты
type DaySlots struct {
	Date  time.Time
	Slots []domain.TimeSlot
}

// Service генератор слотов: сетка из расписания плюс счётчики из журнала вместимости
type Service struct {
	settingsRepo SettingsRepository
	capacityRepo CapacityRepository
	txManager    TransactionManager
	cache        GridCache
	metrics      Metrics
	logger       Logger
}

// NewService создает генератор слотов; cache и metrics могут быть nil
func NewService(
	settingsRepo SettingsRepository,
	capacityRepo CapacityRepository,
	txManager TransactionManager,
	cache GridCache,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		capacityRepo: capacityRepo,
		txManager:    txManager,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

// GenerateSlots слоты магазина на дату; пустой список - нормальный результат
func (s *Service) GenerateSlots(ctx context.Context, storeID int64, date time.Time) ([]domain.TimeSlot, error) {
	days, err := s.generate(ctx, storeID, []time.Time{date}, true)
	if err != nil {
		return nil, err
	}
	return days[0].Slots, nil
}

// GenerateSlotsFresh слоты на дату по текущим настройкам, мимо кэша сеток
// Используется перед резервированием: сетка и вместимость не старше последней правки расписания
func (s *Service) GenerateSlotsFresh(ctx context.Context, storeID int64, date time.Time) ([]domain.TimeSlot, error) {
	days, err := s.generate(ctx, storeID, []time.Time{date}, false)
	if err != nil {
		return nil, err
	}
	return days[0].Slots, nil
}

// GenerateRange слоты магазина на несколько дат; результат в порядке входных дат
// Настройки читаются только при промахе кэша, счётчики - одним запросом на весь диапазон
func (s *Service) GenerateRange(ctx context.Context, storeID int64, dates []time.Time) ([]DaySlots, error) {
	return s.generate(ctx, storeID, dates, true)
}

func (s *Service) generate(ctx context.Context, storeID int64, dates []time.Time, useCache bool) ([]DaySlots, error) {
	if storeID <= 0 {
		return nil, fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}
	if len(dates) == 0 {
		return []DaySlots{}, nil
	}

	var settings *domain.StoreSettings
	grids := make([]*domain.SlotGrid, len(dates))
	from, to := domain.DateOnly(dates[0]), domain.DateOnly(dates[0])

	for i, d := range dates {
		day := domain.DateOnly(d)
		if day.Before(from) {
			from = day
		}
		if day.After(to) {
			to = day
		}

		if useCache {
			if grid, ok := s.cachedGrid(ctx, storeID, day); ok {
				grids[i] = grid
				continue
			}
		}

		if settings == nil {
			loaded, err := s.loadSettings(ctx, storeID)
			if err != nil {
				if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
					s.logger.Warn("GenerateSlots: store=%d not found", storeID)
					return nil, ErrStoreNotFound
				}
				s.logger.Error("GenerateSlots: failed to get settings store=%d: %v", storeID, err)
				return nil, fmt.Errorf("%w: GenerateSlots - get settings: %v", ErrInternal, err)
			}
			settings = loaded
		}

		grids[i] = BuildGridForDate(settings, day)
		if useCache {
			s.storeGrid(ctx, storeID, day, grids[i])
		}
	}

	counters, err := s.capacityRepo.ListByDateRange(ctx, storeID, from, to)
	if err != nil {
		s.logger.Error("GenerateSlots: failed to list capacity store=%d from=%s to=%s: %v",
			storeID, domain.FormatDate(from), domain.FormatDate(to), err)
		return nil, fmt.Errorf("%w: GenerateSlots - list capacity: %v", ErrInternal, err)
	}
	index := indexCapacity(counters)

	result := make([]DaySlots, len(dates))
	for i, d := range dates {
		day := domain.DateOnly(d)
		result[i] = DaySlots{Date: day, Slots: attachCapacity(storeID, day, grids[i], index)}
	}

	return result, nil
}

// loadSettings читает настройки одним снимком: правка расписания не попадает в середину чтения
func (s *Service) loadSettings(ctx context.Context, storeID int64) (*domain.StoreSettings, error) {
	var settings *domain.StoreSettings
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		loaded, err := s.settingsRepo.Get(ctx, storeID)
		if err != nil {
			return err
		}
		settings = loaded
		return nil
	})
	return settings, err
}

func (s *Service) cachedGrid(ctx context.Context, storeID int64, date time.Time) (*domain.SlotGrid, bool) {
	if s.cache == nil {
		return nil, false
	}

	grid, hit, err := s.cache.Get(ctx, storeID, date)
	if err != nil {
		s.logger.Warn("GenerateSlots: cache read failed store=%d date=%s: %v", storeID, domain.FormatDate(date), err)
		return nil, false
	}
	if s.metrics != nil {
		s.metrics.IncCacheLookup(hit)
	}
	return grid, hit
}

func (s *Service) storeGrid(ctx context.Context, storeID int64, date time.Time, grid *domain.SlotGrid) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, storeID, date, grid); err != nil {
		s.logger.Warn("GenerateSlots: cache write failed store=%d date=%s: %v", storeID, domain.FormatDate(date), err)
	}
}
