package delivery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StoreSlots/pkg/psqlbuilder"
)

const tableFeeZones = "fee_zones"

// GetFeeZone получает тариф зоны
func (r *Repository) GetFeeZone(ctx context.Context, zoneKey string) (*domain.FeeZone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"zone_key",
		"fee",
		"free_delivery_minimum",
		"updated_at",
	).
		From(tableFeeZones).
		Where(squirrel.Eq{"zone_key": zoneKey}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFeeZone - build select query: %v", ErrBuildQuery, err)
	}

	var zone domain.FeeZone
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&zone.ZoneKey,
		&zone.Fee,
		&zone.FreeDeliveryMinimum,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeeZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFeeZone - scan zone: %v", ErrScanRow, err)
	}

	zone.UpdatedAt = updatedAt.Time
	return &zone, nil
}

// ListFeeZones получает все тарифы по ключу зоны
func (r *Repository) ListFeeZones(ctx context.Context) ([]domain.FeeZone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"zone_key",
		"fee",
		"free_delivery_minimum",
		"updated_at",
	).
		From(tableFeeZones).
		OrderBy("zone_key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFeeZones - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFeeZones - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	zones := make([]domain.FeeZone, 0)
	for rows.Next() {
		var zone domain.FeeZone
		var updatedAt sql.NullTime

		if err := rows.Scan(&zone.ZoneKey, &zone.Fee, &zone.FreeDeliveryMinimum, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListFeeZones - scan row: %v", ErrScanRow, err)
		}
		zone.UpdatedAt = updatedAt.Time
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFeeZones - rows error: %v", ErrScanRow, err)
	}

	return zones, nil
}

// UpsertFeeZone создает или заменяет тариф зоны
func (r *Repository) UpsertFeeZone(ctx context.Context, zone domain.FeeZone) (*domain.FeeZone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableFeeZones).
		Columns("zone_key", "fee", "free_delivery_minimum").
		Values(zone.ZoneKey, zone.Fee, zone.FreeDeliveryMinimum).
		Suffix(`ON CONFLICT (zone_key) DO UPDATE
SET fee = EXCLUDED.fee,
    free_delivery_minimum = EXCLUDED.free_delivery_minimum,
    updated_at = NOW()
RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertFeeZone - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertFeeZone - execute insert: %v", ErrExecQuery, err)
	}

	zone.UpdatedAt = updatedAt.Time
	return &zone, nil
}

// DeleteFeeZone удаляет тариф зоны
func (r *Repository) DeleteFeeZone(ctx context.Context, zoneKey string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableFeeZones).
		Where(squirrel.Eq{"zone_key": zoneKey}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteFeeZone - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteFeeZone - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteFeeZone - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFeeZoneNotFound
	}
	return nil
}
