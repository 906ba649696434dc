package domain

import (
	"time"

	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// StoreSettings настройки выдачи/доставки магазина
type StoreSettings struct {
	StoreID         int64
	IsPickupEnabled bool
	WeeklySchedule  WeeklySchedule
	HolidayDates    []time.Time
	SpecialHours    []SpecialHoursOverride
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveHours итоговые часы работы на дату
type EffectiveHours struct {
	OpenTime             types.TimeString
	CloseTime            types.TimeString
	SlotDurationMinutes  int
	SlotIncrementMinutes int
	MaxOrdersPerSlot     int
}

// IsHoliday входит ли дата в список праздников
func (s *StoreSettings) IsHoliday(date time.Time) bool {
	day := DateOnly(date)
	for _, h := range s.HolidayDates {
		if DateOnly(h).Equal(day) {
			return true
		}
	}
	return false
}

// OverrideFor переопределение часов на дату
func (s *StoreSettings) OverrideFor(date time.Time) (SpecialHoursOverride, bool) {
	day := DateOnly(date)
	for _, o := range s.SpecialHours {
		if DateOnly(o.Date).Equal(day) {
			return o, true
		}
	}
	return SpecialHoursOverride{}, false
}

// ResolveHours определяет часы работы на дату. false - магазин закрыт
//
// Порядок: закрытый день недели закрыт всегда; затем переопределение на дату
// (длительность, шаг и вместимость слота всегда берутся из дня недели); затем праздник; затем недельное расписание
func (s *StoreSettings) ResolveHours(date time.Time) (EffectiveHours, bool) {
	day, ok := s.WeeklySchedule.ForDay(DateOnly(date).Weekday())
	if !ok || !day.IsOpen {
		return EffectiveHours{}, false
	}

	hours := EffectiveHours{
		OpenTime:             day.OpenTime,
		CloseTime:            day.CloseTime,
		SlotDurationMinutes:  day.SlotDurationMinutes,
		SlotIncrementMinutes: day.SlotIncrementMinutes,
		MaxOrdersPerSlot:     day.MaxOrdersPerSlot,
	}

	if o, ok := s.OverrideFor(date); ok {
		if !o.IsOpen {
			return EffectiveHours{}, false
		}
		if o.HasHours() {
			hours.OpenTime = o.OpenTime
			hours.CloseTime = o.CloseTime
		}
		return hours, true
	}

	if s.IsHoliday(date) {
		return EffectiveHours{}, false
	}
	return hours, true
}
