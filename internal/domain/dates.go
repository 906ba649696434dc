package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// DateOnly приводит момент времени к полуночи UTC того же календарного дня
// Календарный день берётся в часовом поясе самого t
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate парсит YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate форматирует дату как YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// LeadCutoff момент, раньше которого слоты уже не предлагаются и не принимаются
type LeadCutoff struct {
	Date    time.Time
	Minutes int
}

// NewLeadCutoff граница now + leadMinutes в часовом поясе now
func NewLeadCutoff(now time.Time, leadMinutes int) LeadCutoff {
	if leadMinutes < 0 {
		leadMinutes = 0
	}
	t := now.Add(time.Duration(leadMinutes) * time.Minute)
	return LeadCutoff{Date: DateOnly(t), Minutes: t.Hour()*60 + t.Minute()}
}

// Allows начинается ли слот не раньше границы
func (c LeadCutoff) Allows(date time.Time, start types.TimeString) bool {
	day := DateOnly(date)
	switch {
	case day.Before(c.Date):
		return false
	case day.After(c.Date):
		return true
	default:
		return start.Minutes() >= c.Minutes
	}
}
