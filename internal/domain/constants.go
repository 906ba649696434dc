package domain

// Значения по умолчанию
const (
	DefaultHorizonDays = 30
	MaxHorizonDays     = 90
)

// Ограничения расписания
const (
	MaxSlotDurationMinutes = 24 * 60
	MaxOrdersPerSlotLimit  = 10000
	MaxZoneKeyLength       = 64
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"
