package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// DayScheduleDTO расписание дня в HTTP моделях
type DayScheduleDTO struct {
	IsOpen               bool   `json:"isOpen"`
	OpenTime             string `json:"openTime,omitempty"`
	CloseTime            string `json:"closeTime,omitempty"`
	SlotDurationMinutes  int    `json:"slotDurationMinutes"`
	SlotIncrementMinutes int    `json:"slotIncrementMinutes"`
	MaxOrdersPerSlot     int    `json:"maxOrdersPerSlot"`
}

// SpecialHoursDTO переопределение часов в HTTP моделях
type SpecialHoursDTO struct {
	Date      string `json:"date"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// StoreSettingsResponse настройки магазина
type StoreSettingsResponse struct {
	StoreID         int64                     `json:"storeId"`
	IsPickupEnabled bool                      `json:"isPickupEnabled"`
	WeeklySchedule  map[string]DayScheduleDTO `json:"weeklySchedule"`
	HolidayDates    []string                  `json:"holidayDates"`
	SpecialHours    []SpecialHoursDTO         `json:"specialHours"`
	UpdatedAt       *time.Time                `json:"updatedAt,omitempty"`
}

// SlotResponse слот с загрузкой
type SlotResponse struct {
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	MaxOrders     int    `json:"maxOrders"`
	CurrentOrders int    `json:"currentOrders"`
	IsAvailable   bool   `json:"isAvailable"`
}

// FromStoreSettings конвертирует настройки магазина в HTTP ответ
func FromStoreSettings(s *domain.StoreSettings) *StoreSettingsResponse {
	resp := &StoreSettingsResponse{
		StoreID:         s.StoreID,
		IsPickupEnabled: s.IsPickupEnabled,
		WeeklySchedule:  make(map[string]DayScheduleDTO, len(s.WeeklySchedule)),
		HolidayDates:    make([]string, 0, len(s.HolidayDates)),
		SpecialHours:    make([]SpecialHoursDTO, 0, len(s.SpecialHours)),
	}

	for _, day := range s.WeeklySchedule {
		resp.WeeklySchedule[domain.DayName(day.DayOfWeek)] = DayScheduleDTO{
			IsOpen:               day.IsOpen,
			OpenTime:             day.OpenTime.String(),
			CloseTime:            day.CloseTime.String(),
			SlotDurationMinutes:  day.SlotDurationMinutes,
			SlotIncrementMinutes: day.SlotIncrementMinutes,
			MaxOrdersPerSlot:     day.MaxOrdersPerSlot,
		}
	}
	for _, d := range s.HolidayDates {
		resp.HolidayDates = append(resp.HolidayDates, domain.FormatDate(d))
	}
	for _, o := range s.SpecialHours {
		resp.SpecialHours = append(resp.SpecialHours, SpecialHoursDTO{
			Date:      domain.FormatDate(o.Date),
			IsOpen:    o.IsOpen,
			OpenTime:  o.OpenTime.String(),
			CloseTime: o.CloseTime.String(),
		})
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}

	return resp
}

// ToWeeklySchedule разбирает расписание, заданное по именам дней
func ToWeeklySchedule(days map[string]DayScheduleDTO) (domain.WeeklySchedule, error) {
	week := make(domain.WeeklySchedule, 0, len(days))
	// Ключи "monday" и "Monday" - один день; без проверки Sorted молча оставил бы один из них
	var seen [7]bool
	for name, dto := range days {
		weekday, err := domain.ParseDayName(name)
		if err != nil {
			return nil, err
		}
		if seen[weekday] {
			return nil, fmt.Errorf("%w: duplicate schedule for %s", domain.ErrValidation, domain.DayName(weekday))
		}
		seen[weekday] = true
		day := domain.DaySchedule{
			DayOfWeek:            weekday,
			IsOpen:               dto.IsOpen,
			SlotDurationMinutes:  dto.SlotDurationMinutes,
			SlotIncrementMinutes: dto.SlotIncrementMinutes,
			MaxOrdersPerSlot:     dto.MaxOrdersPerSlot,
		}
		if day.OpenTime, err = parseOptionalTime(dto.OpenTime); err != nil {
			return nil, fmt.Errorf("%s: openTime: %w", name, err)
		}
		if day.CloseTime, err = parseOptionalTime(dto.CloseTime); err != nil {
			return nil, fmt.Errorf("%s: closeTime: %w", name, err)
		}
		week = append(week, day)
	}
	return week.Sorted(), nil
}

// ToSpecialHours разбирает список переопределений
func ToSpecialHours(items []SpecialHoursDTO) ([]domain.SpecialHoursOverride, error) {
	overrides := make([]domain.SpecialHoursOverride, 0, len(items))
	for _, dto := range items {
		date, err := domain.ParseDate(dto.Date)
		if err != nil {
			return nil, err
		}
		o := domain.SpecialHoursOverride{Date: date, IsOpen: dto.IsOpen}
		if o.OpenTime, err = parseOptionalTime(dto.OpenTime); err != nil {
			return nil, fmt.Errorf("%s: openTime: %w", dto.Date, err)
		}
		if o.CloseTime, err = parseOptionalTime(dto.CloseTime); err != nil {
			return nil, fmt.Errorf("%s: closeTime: %w", dto.Date, err)
		}
		overrides = append(overrides, o)
	}
	return overrides, nil
}

// ToDates разбирает список дат YYYY-MM-DD
func ToDates(values []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := domain.ParseDate(v)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// FromTimeSlot конвертирует слот в HTTP ответ
func FromTimeSlot(slot *domain.TimeSlot) SlotResponse {
	return SlotResponse{
		Date:          domain.FormatDate(slot.Date),
		StartTime:     slot.StartTime.String(),
		EndTime:       slot.EndTime.String(),
		MaxOrders:     slot.MaxOrders,
		CurrentOrders: slot.CurrentOrders,
		IsAvailable:   slot.IsAvailable(),
	}
}

// ParseSlotWindow разбирает дату и окно слота из строк
func ParseSlotWindow(dateStr, startStr, endStr string) (time.Time, types.TimeString, types.TimeString, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, "", "", err
	}
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("endTime: %w", err)
	}
	return date, start, end, nil
}

func parseOptionalTime(value string) (types.TimeString, error) {
	if value == "" {
		return "", nil
	}
	return types.NewTimeStringFromString(value)
}
