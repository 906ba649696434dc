package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/storesettings"
)

// Service хранилище расписаний магазинов
// Все изменения - полная замена коллекции в одной транзакции
type Service struct {
	repo      SettingsRepository
	txManager TransactionManager
	cache     GridInvalidator
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписаний; cache может быть nil
func NewService(repo SettingsRepository, txManager TransactionManager, cache GridInvalidator, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

// GetSettings получает настройки магазина одним снимком (четыре таблицы)
func (s *Service) GetSettings(ctx context.Context, storeID int64) (*domain.StoreSettings, error) {
	var settings *domain.StoreSettings
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		settings, err = s.repo.Get(ctx, storeID)
		return err
	})
	if err != nil {
		return nil, s.mapRepoError("GetSettings", storeID, err)
	}
	return settings, nil
}

// UpdateSchedule заменяет недельное расписание; создаёт настройки магазина, если их ещё нет
func (s *Service) UpdateSchedule(ctx context.Context, storeID int64, week domain.WeeklySchedule) (*domain.StoreSettings, error) {
	s.logger.Info("UpdateSchedule: store=%d, days=%d", storeID, len(week))

	if err := validateStoreID(storeID); err != nil {
		return nil, err
	}
	if err := week.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.EnsureSettings(ctx, storeID); err != nil {
			return err
		}
		if err := s.repo.ReplaceWeeklySchedule(ctx, storeID, week.Sorted()); err != nil {
			return err
		}
		return s.repo.Touch(ctx, storeID)
	})
	if err != nil {
		return nil, s.mapRepoError("UpdateSchedule", storeID, err)
	}

	s.invalidateStore(ctx, "UpdateSchedule", storeID)

	return s.GetSettings(ctx, storeID)
}

// UpdateHolidayDates заменяет список праздников
func (s *Service) UpdateHolidayDates(ctx context.Context, storeID int64, dates []time.Time) (*domain.StoreSettings, error) {
	s.logger.Info("UpdateHolidayDates: store=%d, dates=%d", storeID, len(dates))

	if err := validateStoreID(storeID); err != nil {
		return nil, err
	}
	normalized := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		normalized = append(normalized, domain.DateOnly(d))
	}
	if err := domain.ValidateHolidayDates(normalized); err != nil {
		s.logger.Warn("UpdateHolidayDates: validation failed store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	domain.SortDates(normalized)

	var previous []time.Time
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// Touch первым: у неизвестного магазина нет строки настроек
		if err := s.repo.Touch(ctx, storeID); err != nil {
			return err
		}
		old, err := s.repo.GetHolidayDates(ctx, storeID)
		if err != nil {
			return err
		}
		previous = old
		return s.repo.ReplaceHolidayDates(ctx, storeID, normalized)
	})
	if err != nil {
		return nil, s.mapRepoError("UpdateHolidayDates", storeID, err)
	}

	s.invalidateDates(ctx, "UpdateHolidayDates", storeID, unionDates(previous, normalized))

	return s.GetSettings(ctx, storeID)
}

// UpdateSpecialHours заменяет список переопределений часов
func (s *Service) UpdateSpecialHours(ctx context.Context, storeID int64, overrides []domain.SpecialHoursOverride) (*domain.StoreSettings, error) {
	s.logger.Info("UpdateSpecialHours: store=%d, overrides=%d", storeID, len(overrides))

	if err := validateStoreID(storeID); err != nil {
		return nil, err
	}
	normalized := make([]domain.SpecialHoursOverride, 0, len(overrides))
	for _, o := range overrides {
		o.Date = domain.DateOnly(o.Date)
		normalized = append(normalized, o)
	}
	if err := domain.ValidateSpecialHours(normalized); err != nil {
		s.logger.Warn("UpdateSpecialHours: validation failed store=%d: %v", storeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var previous []domain.SpecialHoursOverride
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.Touch(ctx, storeID); err != nil {
			return err
		}
		old, err := s.repo.GetSpecialHours(ctx, storeID)
		if err != nil {
			return err
		}
		previous = old
		return s.repo.ReplaceSpecialHours(ctx, storeID, normalized)
	})
	if err != nil {
		return nil, s.mapRepoError("UpdateSpecialHours", storeID, err)
	}

	s.invalidateDates(ctx, "UpdateSpecialHours", storeID, unionDates(overrideDates(previous), overrideDates(normalized)))

	return s.GetSettings(ctx, storeID)
}

// SetPickupEnabled включает или выключает самовывоз
func (s *Service) SetPickupEnabled(ctx context.Context, storeID int64, enabled bool) (*domain.StoreSettings, error) {
	s.logger.Info("SetPickupEnabled: store=%d, enabled=%t", storeID, enabled)

	if err := validateStoreID(storeID); err != nil {
		return nil, err
	}
	if err := s.repo.SetPickupEnabled(ctx, storeID, enabled); err != nil {
		return nil, s.mapRepoError("SetPickupEnabled", storeID, err)
	}

	s.invalidateStore(ctx, "SetPickupEnabled", storeID)

	return s.GetSettings(ctx, storeID)
}

func (s *Service) mapRepoError(op string, storeID int64, err error) error {
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Warn("%s: store=%d not found", op, storeID)
		return ErrStoreNotFound
	}
	s.logger.Error("%s: store=%d: %v", op, storeID, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}

func (s *Service) invalidateStore(ctx context.Context, op string, storeID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateStore(ctx, storeID); err != nil {
		s.logger.Warn("%s: failed to invalidate slot grids store=%d: %v", op, storeID, err)
	}
}

func (s *Service) invalidateDates(ctx context.Context, op string, storeID int64, dates []time.Time) {
	if s.cache == nil || len(dates) == 0 {
		return
	}
	if err := s.cache.InvalidateDates(ctx, storeID, dates); err != nil {
		s.logger.Warn("%s: failed to invalidate slot grids store=%d: %v", op, storeID, err)
	}
}

func validateStoreID(storeID int64) error {
	if storeID <= 0 {
		return fmt.Errorf("%w: storeId must be positive", ErrInvalidInput)
	}
	return nil
}

func overrideDates(overrides []domain.SpecialHoursOverride) []time.Time {
	dates := make([]time.Time, 0, len(overrides))
	for _, o := range overrides {
		dates = append(dates, o.Date)
	}
	return dates
}

// unionDates объединение без повторов, по возрастанию
func unionDates(a, b []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(a)+len(b))
	result := make([]time.Time, 0, len(a)+len(b))
	for _, list := range [][]time.Time{a, b} {
		for _, d := range list {
			day := domain.DateOnly(d)
			if _, ok := seen[day]; ok {
				continue
			}
			seen[day] = struct{}{}
			result = append(result, day)
		}
	}
	domain.SortDates(result)
	return result
}
