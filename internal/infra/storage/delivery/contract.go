package delivery

import (
	"time"

	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// BlockoutFilter фильтр дат блокировки доставки (границы включительно, nil - без ограничения)
type BlockoutFilter struct {
	From *time.Time
	To   *time.Time
}
