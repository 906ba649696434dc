package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/storesettings"
)

// memoryRepo хранилище настроек в памяти
type memoryRepo struct {
	mu       sync.Mutex
	settings map[int64]*domain.StoreSettings
	failWith error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{settings: map[int64]*domain.StoreSettings{}}
}

func (r *memoryRepo) get(storeID int64) (*domain.StoreSettings, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	s, ok := r.settings[storeID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return s, nil
}

func (r *memoryRepo) Get(_ context.Context, storeID int64) (*domain.StoreSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(storeID)
	if err != nil {
		return nil, err
	}
	clone := *s
	return &clone, nil
}

func (r *memoryRepo) GetHolidayDates(_ context.Context, storeID int64) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(storeID)
	if err != nil {
		return nil, err
	}
	return append([]time.Time{}, s.HolidayDates...), nil
}

func (r *memoryRepo) GetSpecialHours(_ context.Context, storeID int64) ([]domain.SpecialHoursOverride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(storeID)
	if err != nil {
		return nil, err
	}
	return append([]domain.SpecialHoursOverride{}, s.SpecialHours...), nil
}

func (r *memoryRepo) EnsureSettings(_ context.Context, storeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.settings[storeID]; !ok {
		r.settings[storeID] = &domain.StoreSettings{
			StoreID:         storeID,
			IsPickupEnabled: true,
			HolidayDates:    []time.Time{},
			SpecialHours:    []domain.SpecialHoursOverride{},
		}
	}
	return nil
}

func (r *memoryRepo) Touch(_ context.Context, storeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.get(storeID)
	return err
}

func (r *memoryRepo) SetPickupEnabled(_ context.Context, storeID int64, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(storeID)
	if err != nil {
		return err
	}
	s.IsPickupEnabled = enabled
	return nil
}

func (r *memoryRepo) ReplaceWeeklySchedule(_ context.Context, storeID int64, week domain.WeeklySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(storeID)
	if err != nil {
		return err
	}
	s.WeeklySchedule = append(domain.WeeklySchedule{}, week...)
	return nil
}

func (r *memoryRepo) ReplaceHolidayDates(_ context.Context, storeID int64, dates []time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(storeID)
	if err != nil {
		return err
	}
	s.HolidayDates = append([]time.Time{}, dates...)
	return nil
}

func (r *memoryRepo) ReplaceSpecialHours(_ context.Context, storeID int64, overrides []domain.SpecialHoursOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.get(storeID)
	if err != nil {
		return err
	}
	s.SpecialHours = append([]domain.SpecialHoursOverride{}, overrides...)
	return nil
}

// inlineTx выполняет функцию без транзакции и считает снимки для чтения
type inlineTx struct{ readOnly int }

func (*inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (t *inlineTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	t.readOnly++
	return fn(ctx)
}

type recordingCache struct {
	storeCalls []int64
	dateCalls  [][]time.Time
}

func (c *recordingCache) InvalidateStore(_ context.Context, storeID int64) error {
	c.storeCalls = append(c.storeCalls, storeID)
	return nil
}

func (c *recordingCache) InvalidateDates(_ context.Context, _ int64, dates []time.Time) error {
	c.dateCalls = append(c.dateCalls, dates)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
