package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/storesettings"
	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func hours(open, close string, duration, increment, maxOrders int) domain.EffectiveHours {
	return domain.EffectiveHours{
		OpenTime:             types.TimeString(open),
		CloseTime:            types.TimeString(close),
		SlotDurationMinutes:  duration,
		SlotIncrementMinutes: increment,
		MaxOrdersPerSlot:     maxOrders,
	}
}

func windows(pairs ...string) []domain.SlotWindow {
	result := make([]domain.SlotWindow, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, domain.SlotWindow{
			StartTime: types.TimeString(pairs[i]),
			EndTime:   types.TimeString(pairs[i+1]),
		})
	}
	return result
}

// weekdayStore Пн-Пт 09:00-12:00, слоты по 60 минут, 2 заказа на слот
func weekdayStore() *domain.StoreSettings {
	week := make(domain.WeeklySchedule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := domain.DaySchedule{DayOfWeek: d}
		if d != time.Saturday && d != time.Sunday {
			day = domain.DaySchedule{
				DayOfWeek:            d,
				IsOpen:               true,
				OpenTime:             "09:00",
				CloseTime:            "12:00",
				SlotDurationMinutes:  60,
				SlotIncrementMinutes: 60,
				MaxOrdersPerSlot:     2,
			}
		}
		week = append(week, day)
	}
	return &domain.StoreSettings{StoreID: 7, IsPickupEnabled: true, WeeklySchedule: week}
}

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name  string
		hours domain.EffectiveHours
		want  []domain.SlotWindow
	}{
		{
			name:  "hourly slots",
			hours: hours("09:00", "12:00", 60, 60, 2),
			want:  windows("09:00", "10:00", "10:00", "11:00", "11:00", "12:00"),
		},
		{
			name:  "nine to five hourly",
			hours: hours("09:00", "17:00", 60, 60, 2),
			want: windows(
				"09:00", "10:00", "10:00", "11:00", "11:00", "12:00", "12:00", "13:00",
				"13:00", "14:00", "14:00", "15:00", "15:00", "16:00", "16:00", "17:00",
			),
		},
		{
			name:  "open until midnight",
			hours: hours("22:00", "24:00", 30, 30, 1),
			want:  windows("22:00", "22:30", "22:30", "23:00", "23:00", "23:30", "23:30", "24:00"),
		},
		{
			name:  "overlapping slots",
			hours: hours("09:00", "11:00", 60, 30, 1),
			want:  windows("09:00", "10:00", "09:30", "10:30", "10:00", "11:00"),
		},
		{
			name:  "tail shorter than duration is dropped",
			hours: hours("09:00", "10:45", 30, 30, 1),
			want:  windows("09:00", "09:30", "09:30", "10:00", "10:00", "10:30"),
		},
		{
			name:  "duration longer than window",
			hours: hours("09:00", "09:30", 60, 60, 1),
			want:  []domain.SlotWindow{},
		},
		{
			name:  "zero increment",
			hours: hours("09:00", "12:00", 60, 0, 1),
			want:  []domain.SlotWindow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildGrid(tt.hours))
		})
	}
}

func TestBuildGridForDate_ClosedDays(t *testing.T) {
	settings := weekdayStore()
	settings.HolidayDates = []time.Time{mustDate(t, "2025-12-25")}

	// Суббота
	grid := BuildGridForDate(settings, mustDate(t, "2025-12-27"))
	assert.Empty(t, grid.Windows)

	// Праздник в четверг
	grid = BuildGridForDate(settings, mustDate(t, "2025-12-25"))
	assert.Empty(t, grid.Windows)

	// Обычный понедельник
	grid = BuildGridForDate(settings, mustDate(t, "2025-12-22"))
	assert.Len(t, grid.Windows, 3)
	assert.Equal(t, 2, grid.MaxOrders)
}

func TestGenerateSlots_AttachesCapacity(t *testing.T) {
	ctx := context.Background()
	day := mustDate(t, "2025-12-22")

	settings := &mockSettingsRepo{}
	settings.On("Get", ctx, int64(7)).Return(weekdayStore(), nil)

	capacity := &mockCapacityRepo{}
	capacity.On("ListByDateRange", ctx, int64(7), day, day).Return([]domain.SlotCapacity{
		{
			Key:           domain.SlotKey{StoreID: 7, Date: day, StartTime: "10:00", EndTime: "11:00"},
			MaxOrders:     2,
			CurrentOrders: 2,
		},
	}, nil)

	svc := NewService(settings, capacity, &snapshotTx{}, nil, nil, nopLogger{})
	slots, err := svc.GenerateSlots(ctx, 7, day)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, 0, slots[0].CurrentOrders)
	assert.True(t, slots[0].IsAvailable())
	assert.Equal(t, types.TimeString("10:00"), slots[1].StartTime)
	assert.Equal(t, 2, slots[1].CurrentOrders)
	assert.False(t, slots[1].IsAvailable())
	assert.Equal(t, 2, slots[2].MaxOrders)
}

func TestGenerateSlots_ClosedDayIsEmpty(t *testing.T) {
	ctx := context.Background()
	saturday := mustDate(t, "2025-12-27")

	settings := &mockSettingsRepo{}
	settings.On("Get", ctx, int64(7)).Return(weekdayStore(), nil)
	capacity := &mockCapacityRepo{}
	capacity.On("ListByDateRange", ctx, int64(7), saturday, saturday).Return([]domain.SlotCapacity{}, nil)

	svc := NewService(settings, capacity, &snapshotTx{}, nil, nil, nopLogger{})
	slots, err := svc.GenerateSlots(ctx, 7, saturday)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlots_StoreNotFound(t *testing.T) {
	ctx := context.Background()
	settings := &mockSettingsRepo{}
	settings.On("Get", ctx, int64(404)).Return(nil, settingsRepo.ErrSettingsNotFound)

	svc := NewService(settings, &mockCapacityRepo{}, &snapshotTx{}, nil, nil, nopLogger{})
	_, err := svc.GenerateSlots(ctx, 404, mustDate(t, "2025-12-22"))
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestGenerateSlots_InvalidStore(t *testing.T) {
	svc := NewService(&mockSettingsRepo{}, &mockCapacityRepo{}, &snapshotTx{}, nil, nil, nopLogger{})
	_, err := svc.GenerateSlots(context.Background(), 0, mustDate(t, "2025-12-22"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateRange_CacheHitSkipsSettings(t *testing.T) {
	ctx := context.Background()
	day := mustDate(t, "2025-12-22")
	cached := &domain.SlotGrid{Windows: windows("09:00", "10:00"), MaxOrders: 5}

	cache := &mockCache{}
	cache.On("Get", ctx, int64(7), day).Return(cached, true, nil)

	settings := &mockSettingsRepo{}
	capacity := &mockCapacityRepo{}
	capacity.On("ListByDateRange", ctx, int64(7), day, day).Return([]domain.SlotCapacity{}, nil)

	svc := NewService(settings, capacity, &snapshotTx{}, cache, nil, nopLogger{})
	days, err := svc.GenerateRange(ctx, 7, []time.Time{day})
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Slots, 1)
	assert.Equal(t, 5, days[0].Slots[0].MaxOrders)

	settings.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGenerateRange_CacheFailureDegrades(t *testing.T) {
	ctx := context.Background()
	monday := mustDate(t, "2025-12-22")
	tuesday := mustDate(t, "2025-12-23")

	cache := &mockCache{}
	cache.On("Get", ctx, int64(7), mock.Anything).Return(nil, false, errors.New("redis down"))
	cache.On("Set", ctx, int64(7), mock.Anything, mock.Anything).Return(errors.New("redis down"))

	settings := &mockSettingsRepo{}
	settings.On("Get", ctx, int64(7)).Return(weekdayStore(), nil).Once()

	capacity := &mockCapacityRepo{}
	capacity.On("ListByDateRange", ctx, int64(7), monday, tuesday).Return([]domain.SlotCapacity{}, nil)

	svc := NewService(settings, capacity, &snapshotTx{}, cache, nil, nopLogger{})
	days, err := svc.GenerateRange(ctx, 7, []time.Time{monday, tuesday})
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Len(t, days[0].Slots, 3)
	assert.Len(t, days[1].Slots, 3)
	assert.Equal(t, tuesday, days[1].Date)

	settings.AssertNumberOfCalls(t, "Get", 1)
}

func TestGenerateRange_CapacityFailure(t *testing.T) {
	ctx := context.Background()
	day := mustDate(t, "2025-12-22")

	settings := &mockSettingsRepo{}
	settings.On("Get", ctx, int64(7)).Return(weekdayStore(), nil)
	capacity := &mockCapacityRepo{}
	capacity.On("ListByDateRange", ctx, int64(7), day, day).Return(nil, errors.New("db down"))

	svc := NewService(settings, capacity, &snapshotTx{}, nil, nil, nopLogger{})
	_, err := svc.GenerateRange(ctx, 7, []time.Time{day})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGenerateSlotsFresh_BypassesCache(t *testing.T) {
	ctx := context.Background()
	day := mustDate(t, "2025-12-22")

	// Ожиданий нет: любое обращение к кэшу уронит тест
	cache := &mockCache{}

	settings := &mockSettingsRepo{}
	settings.On("Get", ctx, int64(7)).Return(weekdayStore(), nil).Once()
	capacity := &mockCapacityRepo{}
	capacity.On("ListByDateRange", ctx, int64(7), day, day).Return([]domain.SlotCapacity{}, nil)

	tx := &snapshotTx{}
	svc := NewService(settings, capacity, tx, cache, nil, nopLogger{})
	slots, err := svc.GenerateSlotsFresh(ctx, 7, day)
	require.NoError(t, err)
	assert.Len(t, slots, 3)

	assert.Equal(t, 1, tx.calls)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateSlots_ReadsSettingsInSnapshot(t *testing.T) {
	ctx := context.Background()
	day := mustDate(t, "2025-12-22")

	settings := &mockSettingsRepo{}
	settings.On("Get", ctx, int64(7)).Return(weekdayStore(), nil)
	capacity := &mockCapacityRepo{}
	capacity.On("ListByDateRange", ctx, int64(7), day, day).Return([]domain.SlotCapacity{}, nil)

	tx := &snapshotTx{}
	svc := NewService(settings, capacity, tx, nil, nil, nopLogger{})
	_, err := svc.GenerateSlots(ctx, 7, day)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}
