package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StoreSlots/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_ListBlockouts_FromFilter(t *testing.T) {
	repo, mock := newRepo(t)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT blockout_date, reason, created_at FROM delivery_blockout_dates WHERE blockout_date >= \\$1 ORDER BY blockout_date ASC").
		WithArgs("2025-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"blockout_date", "reason", "created_at"}).
			AddRow(from, "inventory", time.Now()).
			AddRow(from.AddDate(0, 0, 3), nil, time.Now()))

	got, err := repo.ListBlockouts(context.Background(), BlockoutFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "inventory", *got[0].Reason)
	assert.Nil(t, got[1].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertBlockout(t *testing.T) {
	repo, mock := newRepo(t)
	d := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO delivery_blockout_dates .* ON CONFLICT \\(blockout_date\\) DO UPDATE SET reason = EXCLUDED.reason").
		WithArgs("2025-07-04", "holiday").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	got, err := repo.UpsertBlockout(context.Background(), domain.DeliveryBlockout{Date: d, Reason: ptr.Ptr("holiday")})
	require.NoError(t, err)
	assert.Equal(t, d, got.Date)
}

func TestRepository_DeleteBlockout_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("DELETE FROM delivery_blockout_dates").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteBlockout(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrBlockoutNotFound)
}

func TestRepository_GetFeeZone(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT zone_key, fee, free_delivery_minimum, updated_at FROM fee_zones WHERE zone_key = \\$1").
		WithArgs("manhattan").
		WillReturnRows(sqlmock.NewRows([]string{"zone_key", "fee", "free_delivery_minimum", "updated_at"}).
			AddRow("manhattan", "5.00", "50.00", time.Now()))

	zone, err := repo.GetFeeZone(context.Background(), "manhattan")
	require.NoError(t, err)
	assert.True(t, zone.Fee.Equal(decimal.RequireFromString("5")))
	assert.True(t, zone.FreeDeliveryMinimum.Equal(decimal.RequireFromString("50")))

	mock.ExpectQuery("FROM fee_zones").
		WillReturnRows(sqlmock.NewRows([]string{"zone_key", "fee", "free_delivery_minimum", "updated_at"}))
	_, err = repo.GetFeeZone(context.Background(), "queens")
	assert.ErrorIs(t, err, ErrFeeZoneNotFound)
}

func TestRepository_UpsertFeeZone(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO fee_zones \\(zone_key,fee,free_delivery_minimum\\)").
		WithArgs("bronx", "6.5", "40").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	_, err := repo.UpsertFeeZone(context.Background(), domain.FeeZone{
		ZoneKey:             "bronx",
		Fee:                 decimal.RequireFromString("6.50"),
		FreeDeliveryMinimum: decimal.RequireFromString("40"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
