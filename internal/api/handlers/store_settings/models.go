package store_settings

import "github.com/m04kA/SMC-StoreSlots/internal/api/handlers"

// UpdateScheduleRequest недельное расписание по именам дней
type UpdateScheduleRequest struct {
	WeeklySchedule map[string]handlers.DayScheduleDTO `json:"weeklySchedule"`
}

// UpdateHolidaysRequest полный список праздничных дат
type UpdateHolidaysRequest struct {
	HolidayDates []string `json:"holidayDates"`
}

// UpdateSpecialHoursRequest полный список переопределений часов
type UpdateSpecialHoursRequest struct {
	SpecialHours []handlers.SpecialHoursDTO `json:"specialHours"`
}

// SetPickupEnabledRequest флаг самовывоза
type SetPickupEnabledRequest struct {
	IsPickupEnabled *bool `json:"isPickupEnabled"`
}
