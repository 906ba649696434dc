package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StoreSlots/pkg/psqlbuilder"
)

const tableSlotCapacity = "slot_capacity"

// reserveSuffix условное увеличение: строка создаётся с current_orders=1,
// существующая увеличивается только пока current_orders < max_orders.
// Если условие не выполнено, RETURNING не вернёт строк
const reserveSuffix = `ON CONFLICT (store_id, slot_date, start_time, end_time) DO UPDATE
SET current_orders = slot_capacity.current_orders + 1,
    max_orders = EXCLUDED.max_orders,
    updated_at = NOW()
WHERE slot_capacity.current_orders < EXCLUDED.max_orders
RETURNING max_orders, current_orders, updated_at`

// Repository журнал вместимости слотов
// Все изменения счётчиков выполняются одним условным SQL-выражением
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр журнала вместимости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve атомарно занимает место в слоте
// maxOrders - текущая вместимость слота по расписанию; при maxOrders <= 0 слот считается заполненным
func (r *Repository) Reserve(ctx context.Context, key domain.SlotKey, maxOrders int) (*domain.SlotCapacity, error) {
	if maxOrders <= 0 {
		return nil, ErrCapacityExceeded
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSlotCapacity).
		Columns(
			"store_id",
			"slot_date",
			"start_time",
			"end_time",
			"max_orders",
			"current_orders",
		).
		Values(
			key.StoreID,
			domain.FormatDate(key.Date),
			key.StartTime,
			key.EndTime,
			maxOrders,
			1,
		).
		Suffix(reserveSuffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build upsert query: %v", ErrBuildQuery, err)
	}

	result := domain.SlotCapacity{Key: key}
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&result.MaxOrders,
		&result.CurrentOrders,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapacityExceeded
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute upsert: %v", ErrExecQuery, err)
	}

	result.UpdatedAt = updatedAt.Time
	return &result, nil
}

// Release освобождает место в слоте; счётчик никогда не уходит ниже нуля
// Возвращает false, если освобождать было нечего (строки нет или счётчик уже 0)
func (r *Repository) Release(ctx context.Context, key domain.SlotKey) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlotCapacity).
		Set("current_orders", squirrel.Expr("current_orders - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyPredicate(key)).
		Where(squirrel.Gt{"current_orders": 0}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Get получает строку журнала по ключу слота
func (r *Repository) Get(ctx context.Context, key domain.SlotKey) (*domain.SlotCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"max_orders",
		"current_orders",
		"updated_at",
	).
		From(tableSlotCapacity).
		Where(keyPredicate(key)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	result := domain.SlotCapacity{Key: key}
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&result.MaxOrders,
		&result.CurrentOrders,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapacityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan capacity: %v", ErrScanRow, err)
	}

	result.UpdatedAt = updatedAt.Time
	return &result, nil
}

// ListByDateRange получает строки журнала магазина за период [from, to]
func (r *Repository) ListByDateRange(ctx context.Context, storeID int64, from, to time.Time) ([]domain.SlotCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_date",
		"start_time",
		"end_time",
		"max_orders",
		"current_orders",
		"updated_at",
	).
		From(tableSlotCapacity).
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.GtOrEq{"slot_date": domain.FormatDate(from)}).
		Where(squirrel.LtOrEq{"slot_date": domain.FormatDate(to)}).
		OrderBy("slot_date ASC", "start_time ASC", "end_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.SlotCapacity, 0)
	for rows.Next() {
		c := domain.SlotCapacity{Key: domain.SlotKey{StoreID: storeID}}
		var updatedAt sql.NullTime

		if err := rows.Scan(
			&c.Key.Date,
			&c.Key.StartTime,
			&c.Key.EndTime,
			&c.MaxOrders,
			&c.CurrentOrders,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByDateRange - scan row: %v", ErrScanRow, err)
		}

		c.Key.Date = domain.DateOnly(c.Key.Date)
		c.UpdatedAt = updatedAt.Time
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func keyPredicate(key domain.SlotKey) squirrel.Eq {
	return squirrel.Eq{
		"store_id":   key.StoreID,
		"slot_date":  domain.FormatDate(key.Date),
		"start_time": key.StartTime,
		"end_time":   key.EndTime,
	}
}
