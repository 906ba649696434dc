package domain

import (
	"time"

	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// FulfillmentMethod способ получения заказа
type FulfillmentMethod string

const (
	MethodPickup   FulfillmentMethod = "pickup"
	MethodDelivery FulfillmentMethod = "delivery"
)

// IsValid известен ли способ
func (m FulfillmentMethod) IsValid() bool {
	return m == MethodPickup || m == MethodDelivery
}

// SlotWindow окно слота без счётчиков
type SlotWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// SlotGrid сетка слотов на дату, построенная из расписания
// Пустой Windows - магазин закрыт или часы не вмещают ни одного слота
type SlotGrid struct {
	Windows   []SlotWindow
	MaxOrders int
}

// SlotKey идентификатор слота в журнале вместимости
type SlotKey struct {
	StoreID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// TimeSlot слот с текущей загрузкой
type TimeSlot struct {
	StoreID       int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	MaxOrders     int
	CurrentOrders int
}

// IsAvailable есть ли свободное место
func (s *TimeSlot) IsAvailable() bool {
	return s.CurrentOrders < s.MaxOrders
}

// Key ключ слота
func (s *TimeSlot) Key() SlotKey {
	return SlotKey{StoreID: s.StoreID, Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
}

// SlotCapacity строка журнала вместимости
type SlotCapacity struct {
	Key           SlotKey
	MaxOrders     int
	CurrentOrders int
	UpdatedAt     time.Time
}

// Remaining количество свободных мест
func (c *SlotCapacity) Remaining() int {
	if c.CurrentOrders >= c.MaxOrders {
		return 0
	}
	return c.MaxOrders - c.CurrentOrders
}
