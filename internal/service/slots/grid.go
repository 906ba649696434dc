package slots

import (
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

// BuildGrid строит окна слотов по часам работы
// Старт идёт от открытия с шагом increment, слот [start, start+duration] попадает в сетку,
// пока start+duration <= closeTime. Окна могут перекрываться, если increment < duration
func BuildGrid(hours domain.EffectiveHours) []domain.SlotWindow {
	windows := make([]domain.SlotWindow, 0)

	open := hours.OpenTime.Minutes()
	closeAt := hours.CloseTime.Minutes()
	duration := hours.SlotDurationMinutes
	increment := hours.SlotIncrementMinutes

	if open < 0 || closeAt < 0 || duration <= 0 || increment <= 0 {
		return windows
	}

	for start := open; start+duration <= closeAt; start += increment {
		startTime, err := hours.OpenTime.AddMinutes(start - open)
		if err != nil {
			break
		}
		endTime, err := startTime.AddMinutes(duration)
		if err != nil {
			break
		}
		windows = append(windows, domain.SlotWindow{StartTime: startTime, EndTime: endTime})
	}

	return windows
}

// BuildGridForDate сетка слотов на дату по настройкам магазина
func BuildGridForDate(settings *domain.StoreSettings, date time.Time) *domain.SlotGrid {
	hours, open := settings.ResolveHours(date)
	if !open {
		return &domain.SlotGrid{Windows: []domain.SlotWindow{}}
	}
	return &domain.SlotGrid{
		Windows:   BuildGrid(hours),
		MaxOrders: hours.MaxOrdersPerSlot,
	}
}

// attachCapacity собирает слоты из сетки и счётчиков журнала
func attachCapacity(storeID int64, date time.Time, grid *domain.SlotGrid, counters map[capacityKey]int) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, len(grid.Windows))
	for _, w := range grid.Windows {
		result = append(result, domain.TimeSlot{
			StoreID:       storeID,
			Date:          date,
			StartTime:     w.StartTime,
			EndTime:       w.EndTime,
			MaxOrders:     grid.MaxOrders,
			CurrentOrders: counters[capacityKey{date: date, start: w.StartTime.String(), end: w.EndTime.String()}],
		})
	}
	return result
}

type capacityKey struct {
	date  time.Time
	start string
	end   string
}

func indexCapacity(rows []domain.SlotCapacity) map[capacityKey]int {
	index := make(map[capacityKey]int, len(rows))
	for _, row := range rows {
		index[capacityKey{
			date:  domain.DateOnly(row.Key.Date),
			start: row.Key.StartTime.String(),
			end:   row.Key.EndTime.String(),
		}] = row.CurrentOrders
	}
	return index
}
