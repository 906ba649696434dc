package orderlog

import "time"

// Entry строка журнала заказов
type Entry struct {
	Timestamp time.Time
	OrderRef  string
	Method    string
	StoreID   int64
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

var header = []string{"Timestamp", "Order", "Method", "Store", "Date", "Start", "End"}

func (e Entry) row() []interface{} {
	return []interface{}{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.OrderRef,
		e.Method,
		e.StoreID,
		e.Date,
		e.StartTime,
		e.EndTime,
	}
}
