package slots

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
)

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context, storeID int64) (*domain.StoreSettings, error) {
	args := m.Called(ctx, storeID)
	if s := args.Get(0); s != nil {
		return s.(*domain.StoreSettings), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCapacityRepo struct{ mock.Mock }

func (m *mockCapacityRepo) ListByDateRange(ctx context.Context, storeID int64, from, to time.Time) ([]domain.SlotCapacity, error) {
	args := m.Called(ctx, storeID, from, to)
	if rows := args.Get(0); rows != nil {
		return rows.([]domain.SlotCapacity), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, storeID int64, date time.Time) (*domain.SlotGrid, bool, error) {
	args := m.Called(ctx, storeID, date)
	if g := args.Get(0); g != nil {
		return g.(*domain.SlotGrid), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, storeID int64, date time.Time, grid *domain.SlotGrid) error {
	return m.Called(ctx, storeID, date, grid).Error(0)
}

// snapshotTx выполняет функцию сразу и считает вызовы
type snapshotTx struct{ calls int }

func (tx *snapshotTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
