package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

var dayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayName имя дня недели в нижнем регистре ("monday")
func DayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return dayNames[d]
}

// ParseDayName разбирает имя дня недели без учёта регистра
func ParseDayName(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		if name == s {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown day of week %q", ErrValidation, s)
}

// DaySchedule расписание одного дня недели
// Для закрытого дня время может быть не задано
type DaySchedule struct {
	DayOfWeek            time.Weekday
	IsOpen               bool
	OpenTime             types.TimeString
	CloseTime            types.TimeString
	SlotDurationMinutes  int
	SlotIncrementMinutes int
	MaxOrdersPerSlot     int
}

// Validate проверяет расписание дня
func (d DaySchedule) Validate() error {
	name := DayName(d.DayOfWeek)
	if name == "" {
		return fmt.Errorf("%w: day of week %d is out of range", ErrValidation, d.DayOfWeek)
	}
	// Закрытый день слотов не даёт, нулевые длительность и шаг для него допустимы
	minMinutes := 1
	if !d.IsOpen {
		minMinutes = 0
	}
	if d.SlotDurationMinutes < minMinutes || d.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: %s: slotDurationMinutes must be in %d..%d, got %d",
			ErrValidation, name, minMinutes, MaxSlotDurationMinutes, d.SlotDurationMinutes)
	}
	if d.SlotIncrementMinutes < minMinutes || d.SlotIncrementMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: %s: slotIncrementMinutes must be in %d..%d, got %d",
			ErrValidation, name, minMinutes, MaxSlotDurationMinutes, d.SlotIncrementMinutes)
	}
	if d.MaxOrdersPerSlot < 0 || d.MaxOrdersPerSlot > MaxOrdersPerSlotLimit {
		return fmt.Errorf("%w: %s: maxOrdersPerSlot must be in 0..%d, got %d",
			ErrValidation, name, MaxOrdersPerSlotLimit, d.MaxOrdersPerSlot)
	}

	if !d.OpenTime.IsZero() || !d.CloseTime.IsZero() || d.IsOpen {
		if err := validateHours(name, d.OpenTime, d.CloseTime); err != nil {
			return err
		}
	}

	if d.IsOpen {
		window := d.CloseTime.Minutes() - d.OpenTime.Minutes()
		if d.SlotDurationMinutes > window {
			return fmt.Errorf("%w: %s: slotDurationMinutes %d exceeds opening window of %d minutes",
				ErrValidation, name, d.SlotDurationMinutes, window)
		}
	}
	return nil
}

func validateHours(scope string, open, close types.TimeString) error {
	if err := open.Validate(); err != nil {
		return fmt.Errorf("%w: %s: openTime: %v", ErrValidation, scope, err)
	}
	if err := close.Validate(); err != nil {
		return fmt.Errorf("%w: %s: closeTime: %v", ErrValidation, scope, err)
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: %s: openTime %s must be before closeTime %s", ErrValidation, scope, open, close)
	}
	return nil
}

// WeeklySchedule недельное расписание, ровно по одному дню на каждый день недели
type WeeklySchedule []DaySchedule

// Validate проверяет полноту недели и каждый день
func (w WeeklySchedule) Validate() error {
	var seen [7]bool
	for _, day := range w {
		if err := day.Validate(); err != nil {
			return err
		}
		if seen[day.DayOfWeek] {
			return fmt.Errorf("%w: duplicate schedule for %s", ErrValidation, DayName(day.DayOfWeek))
		}
		seen[day.DayOfWeek] = true
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: missing schedule for %s", ErrValidation, dayNames[i])
		}
	}
	return nil
}

// ForDay возвращает расписание для дня недели
func (w WeeklySchedule) ForDay(d time.Weekday) (DaySchedule, bool) {
	for _, day := range w {
		if day.DayOfWeek == d {
			return day, true
		}
	}
	return DaySchedule{}, false
}

// Sorted копия, упорядоченная от воскресенья до субботы
func (w WeeklySchedule) Sorted() WeeklySchedule {
	out := make(WeeklySchedule, 0, len(w))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if day, ok := w.ForDay(d); ok {
			out = append(out, day)
		}
	}
	return out
}
