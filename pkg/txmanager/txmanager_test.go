package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
)

func newManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewTransactionManager(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestDo_Commit(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM store_holidays").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		tx, _ := dbmetrics.TxFromContext(ctx)
		_, err := tx.ExecContext(ctx, "DELETE FROM store_holidays WHERE store_id = $1", 1)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoReadOnly_SingleSnapshot(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT pickup_enabled FROM store_settings").
		WillReturnRows(sqlmock.NewRows([]string{"pickup_enabled"}).AddRow(true))
	mock.ExpectQuery("SELECT holiday_date FROM store_holidays").
		WillReturnRows(sqlmock.NewRows([]string{"holiday_date"}))
	mock.ExpectCommit()

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		tx, ok := dbmetrics.TxFromContext(ctx)
		require.True(t, ok)
		rows, err := tx.QueryContext(ctx, "SELECT pickup_enabled FROM store_settings WHERE store_id = $1", 1)
		if err != nil {
			return err
		}
		rows.Close()
		rows, err = tx.QueryContext(ctx, "SELECT holiday_date FROM store_holidays WHERE store_id = $1", 1)
		if err != nil {
			return err
		}
		return rows.Close()
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedReusesOuterTx(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoReadOnly(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginFails(t *testing.T) {
	m, mock := newManager(t)
	mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)
}
