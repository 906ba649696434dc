package capacity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	capacityRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-StoreSlots/pkg/metrics"
)

// memoryLedger повторяет условные выражения репозитория под мьютексом
type memoryLedger struct {
	mu      sync.Mutex
	rows    map[domain.SlotKey]*domain.SlotCapacity
	failErr error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{rows: map[domain.SlotKey]*domain.SlotCapacity{}}
}

func (l *memoryLedger) Reserve(_ context.Context, key domain.SlotKey, maxOrders int) (*domain.SlotCapacity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failErr != nil {
		return nil, l.failErr
	}
	if maxOrders <= 0 {
		return nil, capacityRepo.ErrCapacityExceeded
	}
	row, ok := l.rows[key]
	if !ok {
		row = &domain.SlotCapacity{Key: key, MaxOrders: maxOrders, CurrentOrders: 1}
		l.rows[key] = row
		clone := *row
		return &clone, nil
	}
	if row.CurrentOrders >= maxOrders {
		return nil, capacityRepo.ErrCapacityExceeded
	}
	row.CurrentOrders++
	row.MaxOrders = maxOrders
	clone := *row
	return &clone, nil
}

func (l *memoryLedger) Release(_ context.Context, key domain.SlotKey) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failErr != nil {
		return false, l.failErr
	}
	row, ok := l.rows[key]
	if !ok || row.CurrentOrders == 0 {
		return false, nil
	}
	row.CurrentOrders--
	return true, nil
}

func (l *memoryLedger) Get(_ context.Context, key domain.SlotKey) (*domain.SlotCapacity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[key]
	if !ok {
		return nil, capacityRepo.ErrCapacityNotFound
	}
	clone := *row
	return &clone, nil
}

type recordingMetrics struct {
	mu           sync.Mutex
	reservations map[string]int
	releases     map[string]int
	anomalies    int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{reservations: map[string]int{}, releases: map[string]int{}}
}

func (m *recordingMetrics) IncReservation(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[result]++
}

func (m *recordingMetrics) IncRelease(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases[result]++
}

func (m *recordingMetrics) IncReleaseAnomaly(int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anomalies++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testKey(t *testing.T) domain.SlotKey {
	t.Helper()
	d, err := domain.ParseDate("2025-12-22")
	require.NoError(t, err)
	return domain.SlotKey{StoreID: 7, Date: d, StartTime: "09:00", EndTime: "10:00"}
}

func TestReserve_ConcurrentRequestsNeverOverbook(t *testing.T) {
	const (
		maxOrders = 5
		attempts  = 40
	)

	ledger := newMemoryLedger()
	m := newRecordingMetrics()
	svc := NewService(ledger, m, nopLogger{})
	key := testKey(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		reserved int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), key, maxOrders)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				reserved++
			case errors.Is(err, ErrCapacityExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, maxOrders, reserved)
	assert.Equal(t, attempts-maxOrders, rejected)

	row, err := svc.GetCapacity(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, maxOrders, row.CurrentOrders)
	assert.Equal(t, maxOrders, m.reservations[metrics.ReservationReserved])
	assert.Equal(t, attempts-maxOrders, m.reservations[metrics.ReservationRejected])
}

func TestReserve_ReleaseRestoresCapacity(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryLedger(), newRecordingMetrics(), nopLogger{})
	key := testKey(t)

	_, err := svc.Reserve(ctx, key, 1)
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, key, 1)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	require.NoError(t, svc.Release(ctx, key))

	row, err := svc.Reserve(ctx, key, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, row.CurrentOrders)
}

func TestRelease_NeverBelowZero(t *testing.T) {
	ctx := context.Background()
	m := newRecordingMetrics()
	ledger := newMemoryLedger()
	svc := NewService(ledger, m, nopLogger{})
	key := testKey(t)

	// Ни одной брони ещё не было
	require.NoError(t, svc.Release(ctx, key))

	_, err := svc.Reserve(ctx, key, 3)
	require.NoError(t, err)
	require.NoError(t, svc.Release(ctx, key))
	require.NoError(t, svc.Release(ctx, key))

	row, err := svc.GetCapacity(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, row.CurrentOrders)
	assert.Equal(t, 2, m.anomalies)
	assert.Equal(t, 1, m.releases[metrics.ReleaseReleased])
	assert.Equal(t, 2, m.releases[metrics.ReleaseClamped])
}

func TestReserve_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "transient", repoErr: fmt.Errorf("%w: boom", capacityRepo.ErrExecQuery), want: ErrTransient},
		{name: "scan", repoErr: fmt.Errorf("%w: boom", capacityRepo.ErrScanRow), want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newMemoryLedger()
			ledger.failErr = tt.repoErr
			m := newRecordingMetrics()
			svc := NewService(ledger, m, nopLogger{})

			_, err := svc.Reserve(context.Background(), testKey(t), 2)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, m.reservations[metrics.ReservationFailed])
		})
	}
}

func TestReserve_InvalidKey(t *testing.T) {
	svc := NewService(newMemoryLedger(), newRecordingMetrics(), nopLogger{})
	key := testKey(t)
	key.EndTime = "08:00"

	_, err := svc.Reserve(context.Background(), key, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCapacity_NotFound(t *testing.T) {
	svc := NewService(newMemoryLedger(), newRecordingMetrics(), nopLogger{})
	_, err := svc.GetCapacity(context.Background(), testKey(t))
	assert.ErrorIs(t, err, ErrCapacityNotFound)
}

func TestService_NilPrometheusMetrics(t *testing.T) {
	var m *metrics.Metrics
	svc := NewService(newMemoryLedger(), m, nopLogger{})

	_, err := svc.Reserve(context.Background(), testKey(t), 1)
	require.NoError(t, err)
	require.NoError(t, svc.Release(context.Background(), testKey(t)))
}
