package delivery

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StoreSlots/pkg/psqlbuilder"
)

const tableBlockouts = "delivery_blockout_dates"

// Repository репозиторий справочников доставки: даты блокировки и тарифы зон
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доставки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBlockouts получает даты блокировки по возрастанию
func (r *Repository) ListBlockouts(ctx context.Context, filter BlockoutFilter) ([]domain.DeliveryBlockout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"blockout_date",
		"reason",
		"created_at",
	).
		From(tableBlockouts).
		OrderBy("blockout_date ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blockout_date": domain.FormatDate(*filter.From)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"blockout_date": domain.FormatDate(*filter.To)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockouts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockouts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blockouts := make([]domain.DeliveryBlockout, 0)
	for rows.Next() {
		var b domain.DeliveryBlockout
		var reason sql.NullString
		var createdAt sql.NullTime

		if err := rows.Scan(&b.Date, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockouts - scan row: %v", ErrScanRow, err)
		}

		b.Date = domain.DateOnly(b.Date)
		if reason.Valid {
			b.Reason = &reason.String
		}
		b.CreatedAt = createdAt.Time
		blockouts = append(blockouts, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockouts - rows error: %v", ErrScanRow, err)
	}

	return blockouts, nil
}

// UpsertBlockout добавляет дату блокировки; повторное добавление обновляет причину
func (r *Repository) UpsertBlockout(ctx context.Context, blockout domain.DeliveryBlockout) (*domain.DeliveryBlockout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBlockouts).
		Columns("blockout_date", "reason").
		Values(domain.FormatDate(blockout.Date), blockout.Reason).
		Suffix("ON CONFLICT (blockout_date) DO UPDATE SET reason = EXCLUDED.reason RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertBlockout - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertBlockout - execute insert: %v", ErrExecQuery, err)
	}

	blockout.Date = domain.DateOnly(blockout.Date)
	blockout.CreatedAt = createdAt.Time
	return &blockout, nil
}

// DeleteBlockout удаляет дату блокировки
func (r *Repository) DeleteBlockout(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBlockouts).
		Where(squirrel.Eq{"blockout_date": domain.FormatDate(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockout - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockout - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockout - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockoutNotFound
	}
	return nil
}
