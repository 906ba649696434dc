package dbmetrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedQuery struct {
	operation string
	failed    bool
}

type fakeRecorder struct {
	mu      sync.Mutex
	queries []recordedQuery
}

func (f *fakeRecorder) ObserveDBQuery(operation string, err error, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, recordedQuery{operation: operation, failed: err != nil})
}

func (f *fakeRecorder) SetDBPoolStats(string, int, int, int, int64) {}

func TestDB_ObservesQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := &DB{db: sqlDB, recorder: rec}

	mock.ExpectExec("UPDATE slot_capacity").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("boom"))

	_, err = db.ExecContext(context.Background(), "UPDATE slot_capacity SET current_orders = 0")
	require.NoError(t, err)
	_, err = db.QueryContext(context.Background(), "SELECT 1")
	require.Error(t, err)

	require.Len(t, rec.queries, 2)
	assert.Equal(t, recordedQuery{operation: "update", failed: false}, rec.queries[0])
	assert.Equal(t, recordedQuery{operation: "select", failed: true}, rec.queries[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "insert", operationName("  INSERT INTO x VALUES ($1)"))
	assert.Equal(t, "unknown", operationName(""))
}
