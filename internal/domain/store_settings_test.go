package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

func weekdaysNineToFive() WeeklySchedule {
	week := make(WeeklySchedule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := DaySchedule{
			DayOfWeek:            d,
			IsOpen:               d != time.Sunday && d != time.Saturday,
			SlotDurationMinutes:  60,
			SlotIncrementMinutes: 60,
			MaxOrdersPerSlot:     2,
		}
		if day.IsOpen {
			day.OpenTime = "09:00"
			day.CloseTime = "17:00"
		}
		week = append(week, day)
	}
	return week
}

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolveHours(t *testing.T) {
	monday := date("2024-12-23")
	christmas := date("2024-12-25") // среда
	saturday := date("2024-12-28")

	tests := []struct {
		name     string
		settings StoreSettings
		date     time.Time
		wantOpen bool
		wantFrom types.TimeString
		wantTo   types.TimeString
	}{
		{
			name:     "regular weekday",
			settings: StoreSettings{WeeklySchedule: weekdaysNineToFive()},
			date:     monday,
			wantOpen: true, wantFrom: "09:00", wantTo: "17:00",
		},
		{
			name:     "closed weekday",
			settings: StoreSettings{WeeklySchedule: weekdaysNineToFive()},
			date:     saturday,
		},
		{
			name: "holiday without override",
			settings: StoreSettings{
				WeeklySchedule: weekdaysNineToFive(),
				HolidayDates:   []time.Time{christmas},
			},
			date: christmas,
		},
		{
			name: "override reopens holiday with own hours",
			settings: StoreSettings{
				WeeklySchedule: weekdaysNineToFive(),
				HolidayDates:   []time.Time{christmas},
				SpecialHours: []SpecialHoursOverride{
					{Date: christmas, IsOpen: true, OpenTime: "10:00", CloseTime: "14:00"},
				},
			},
			date:     christmas,
			wantOpen: true, wantFrom: "10:00", wantTo: "14:00",
		},
		{
			name: "open override without hours keeps weekday hours",
			settings: StoreSettings{
				WeeklySchedule: weekdaysNineToFive(),
				HolidayDates:   []time.Time{christmas},
				SpecialHours:   []SpecialHoursOverride{{Date: christmas, IsOpen: true}},
			},
			date:     christmas,
			wantOpen: true, wantFrom: "09:00", wantTo: "17:00",
		},
		{
			name: "closed override on regular day",
			settings: StoreSettings{
				WeeklySchedule: weekdaysNineToFive(),
				SpecialHours:   []SpecialHoursOverride{{Date: monday, IsOpen: false}},
			},
			date: monday,
		},
		{
			name: "override cannot open a closed weekday",
			settings: StoreSettings{
				WeeklySchedule: weekdaysNineToFive(),
				SpecialHours: []SpecialHoursOverride{
					{Date: saturday, IsOpen: true, OpenTime: "10:00", CloseTime: "12:00"},
				},
			},
			date: saturday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, open := tt.settings.ResolveHours(tt.date)
			assert.Equal(t, tt.wantOpen, open)
			if tt.wantOpen {
				assert.Equal(t, tt.wantFrom, hours.OpenTime)
				assert.Equal(t, tt.wantTo, hours.CloseTime)
				assert.Equal(t, 60, hours.SlotDurationMinutes)
				assert.Equal(t, 2, hours.MaxOrdersPerSlot)
			}
		})
	}
}

func TestWeeklySchedule_Validate(t *testing.T) {
	require.NoError(t, weekdaysNineToFive().Validate())

	tests := []struct {
		name   string
		mutate func(w WeeklySchedule) WeeklySchedule
		substr string
	}{
		{
			name:   "missing day",
			mutate: func(w WeeklySchedule) WeeklySchedule { return w[:6] },
			substr: "missing schedule for saturday",
		},
		{
			name: "duplicate day",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[6].DayOfWeek = time.Friday
				return w
			},
			substr: "duplicate schedule for friday",
		},
		{
			name: "open after close",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[1].OpenTime, w[1].CloseTime = "17:00", "09:00"
				return w
			},
			substr: "openTime 17:00 must be before closeTime 09:00",
		},
		{
			name: "slot longer than window",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[1].SlotDurationMinutes = 600
				return w
			},
			substr: "exceeds opening window",
		},
		{
			name: "zero increment",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[2].SlotIncrementMinutes = 0
				return w
			},
			substr: "slotIncrementMinutes",
		},
		{
			name: "zero duration on open day",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[1].SlotDurationMinutes = 0
				return w
			},
			substr: "monday: slotDurationMinutes must be in 1..1440, got 0",
		},
		{
			name: "negative duration on closed day",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[0].SlotDurationMinutes = -5
				return w
			},
			substr: "sunday: slotDurationMinutes must be in 0..1440, got -5",
		},
		{
			name: "negative max orders",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[3].MaxOrdersPerSlot = -1
				return w
			},
			substr: "maxOrdersPerSlot",
		},
		{
			name: "open day without hours",
			mutate: func(w WeeklySchedule) WeeklySchedule {
				w[4].OpenTime, w[4].CloseTime = "", ""
				return w
			},
			substr: "openTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(weekdaysNineToFive()).Validate()
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestWeeklySchedule_Validate_ClosedDayWithoutSlotParams(t *testing.T) {
	week := weekdaysNineToFive()
	week[0] = DaySchedule{DayOfWeek: time.Sunday}
	week[6] = DaySchedule{DayOfWeek: time.Saturday}

	require.NoError(t, week.Validate())

	settings := StoreSettings{WeeklySchedule: week}
	_, open := settings.ResolveHours(date("2024-12-28"))
	assert.False(t, open)
}

func TestWeeklySchedule_Validate_EndOfDayClose(t *testing.T) {
	week := weekdaysNineToFive()
	week[5].OpenTime, week[5].CloseTime = "18:00", types.EndOfDay

	require.NoError(t, week.Validate())

	week[5].OpenTime = types.EndOfDay
	err := week.Validate()
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "must be before closeTime")
}

func TestValidateSpecialHoursAndHolidays(t *testing.T) {
	d := date("2025-01-01")

	assert.NoError(t, ValidateSpecialHours([]SpecialHoursOverride{{Date: d, IsOpen: true}}))
	assert.ErrorIs(t, ValidateSpecialHours([]SpecialHoursOverride{
		{Date: d, IsOpen: false}, {Date: d, IsOpen: true},
	}), ErrValidation)
	assert.ErrorIs(t, ValidateSpecialHours([]SpecialHoursOverride{
		{Date: d, IsOpen: true, OpenTime: "10:00"},
	}), ErrValidation)

	assert.NoError(t, ValidateHolidayDates([]time.Time{d, d.AddDate(0, 0, 1)}))
	assert.ErrorIs(t, ValidateHolidayDates([]time.Time{d, d}), ErrValidation)
}

func TestParseDayName(t *testing.T) {
	wd, err := ParseDayName(" Monday ")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)
	assert.Equal(t, "monday", DayName(wd))

	_, err = ParseDayName("funday")
	assert.ErrorIs(t, err, ErrValidation)
}
