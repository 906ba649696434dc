package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// SpecialHoursOverride разовое изменение часов работы на конкретную дату
// Пустые OpenTime/CloseTime означают часы из недельного расписания
type SpecialHoursOverride struct {
	Date      time.Time
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// HasHours заданы ли собственные часы
func (o SpecialHoursOverride) HasHours() bool {
	return !o.OpenTime.IsZero() && !o.CloseTime.IsZero()
}

// Validate проверяет переопределение
func (o SpecialHoursOverride) Validate() error {
	if o.Date.IsZero() {
		return fmt.Errorf("%w: special hours: date is required", ErrValidation)
	}
	scope := "special hours " + FormatDate(o.Date)
	if o.OpenTime.IsZero() != o.CloseTime.IsZero() {
		return fmt.Errorf("%w: %s: openTime and closeTime must be set together", ErrValidation, scope)
	}
	if o.HasHours() {
		return validateHours(scope, o.OpenTime, o.CloseTime)
	}
	return nil
}

// ValidateSpecialHours проверяет список переопределений целиком, включая дубли дат
func ValidateSpecialHours(overrides []SpecialHoursOverride) error {
	seen := make(map[time.Time]struct{}, len(overrides))
	for _, o := range overrides {
		if err := o.Validate(); err != nil {
			return err
		}
		d := DateOnly(o.Date)
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: duplicate special hours for %s", ErrValidation, FormatDate(d))
		}
		seen[d] = struct{}{}
	}
	return nil
}

// ValidateHolidayDates проверяет отсутствие пустых и повторяющихся дат
func ValidateHolidayDates(dates []time.Time) error {
	seen := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			return fmt.Errorf("%w: holiday date is required", ErrValidation)
		}
		day := DateOnly(d)
		if _, ok := seen[day]; ok {
			return fmt.Errorf("%w: duplicate holiday date %s", ErrValidation, FormatDate(day))
		}
		seen[day] = struct{}{}
	}
	return nil
}

// SortDates сортирует даты по возрастанию на месте
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
