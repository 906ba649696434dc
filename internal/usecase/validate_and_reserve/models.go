package validate_and_reserve

import (
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// Request модель запроса на резервирование слота при оформлении заказа
type Request struct {
	StoreID   int64                    // ID магазина
	Date      time.Time                // Дата слота
	StartTime types.TimeString         // Начало окна
	EndTime   types.TimeString         // Конец окна
	Method    domain.FulfillmentMethod // pickup или delivery; пустой - pickup
	OrderRef  string                   // Номер заказа для журнала (необязательный)
}

// Response модель ответа: слот со счётчиками после резервирования
type Response struct {
	Slot domain.TimeSlot
}
