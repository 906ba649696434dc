package slotgrid

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из redis
	ErrCacheRead = errors.New("slotgrid.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в redis
	ErrCacheWrite = errors.New("slotgrid.cache: failed to write")

	// ErrCacheInvalidate возвращается при ошибке удаления ключей
	ErrCacheInvalidate = errors.New("slotgrid.cache: failed to invalidate")
)
