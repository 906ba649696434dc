package schedule

import "errors"

var (
	// ErrStoreNotFound возвращается, когда у магазина нет настроек
	ErrStoreNotFound = errors.New("schedule: store not found")

	// ErrInvalidInput возвращается при нарушении правил расписания; текст содержит конкретное нарушение
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
