package slotgrid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

const (
	keyPrefix     = "slotgrid"
	scanBatchSize = 200
)

type cachedWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type cachedGrid struct {
	MaxOrders int            `json:"maxOrders"`
	Windows   []cachedWindow `json:"windows"`
}

// Cache кэш сеток слотов в redis: ключ slotgrid:{storeId}:{YYYY-MM-DD}
// Хранит только окна и вместимость, счётчики бронирований в кэш не попадают
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш сеток слотов
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает сетку из кэша; (nil, false, nil) при промахе
func (c *Cache) Get(ctx context.Context, storeID int64, date time.Time) (*domain.SlotGrid, bool, error) {
	val, err := c.client.Get(ctx, key(storeID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - store=%d date=%s: %v", ErrCacheRead, storeID, domain.FormatDate(date), err)
	}

	var cached cachedGrid
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, false, fmt.Errorf("%w: Get - decode: %v", ErrCacheRead, err)
	}

	grid := &domain.SlotGrid{
		MaxOrders: cached.MaxOrders,
		Windows:   make([]domain.SlotWindow, 0, len(cached.Windows)),
	}
	for _, w := range cached.Windows {
		grid.Windows = append(grid.Windows, domain.SlotWindow{
			StartTime: types.TimeString(w.Start),
			EndTime:   types.TimeString(w.End),
		})
	}
	return grid, true, nil
}

// Set кладёт сетку в кэш с TTL
func (c *Cache) Set(ctx context.Context, storeID int64, date time.Time, grid *domain.SlotGrid) error {
	cached := cachedGrid{
		MaxOrders: grid.MaxOrders,
		Windows:   make([]cachedWindow, 0, len(grid.Windows)),
	}
	for _, w := range grid.Windows {
		cached.Windows = append(cached.Windows, cachedWindow{Start: w.StartTime.String(), End: w.EndTime.String()})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, key(storeID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - store=%d date=%s: %v", ErrCacheWrite, storeID, domain.FormatDate(date), err)
	}
	return nil
}

// InvalidateDates удаляет сетки магазина на указанные даты
func (c *Cache) InvalidateDates(ctx context.Context, storeID int64, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, key(storeID, d))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateDates - store=%d: %v", ErrCacheInvalidate, storeID, err)
	}
	return nil
}

// InvalidateStore удаляет все сетки магазина
func (c *Cache) InvalidateStore(ctx context.Context, storeID int64) error {
	pattern := fmt.Sprintf("%s:%d:*", keyPrefix, storeID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("%w: InvalidateStore - scan store=%d: %v", ErrCacheInvalidate, storeID, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: InvalidateStore - del store=%d: %v", ErrCacheInvalidate, storeID, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func key(storeID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, storeID, domain.FormatDate(date))
}
