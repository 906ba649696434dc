package gate

import "errors"

var (
	// ErrStoreNotFound возвращается, когда у магазина нет настроек
	ErrStoreNotFound = errors.New("gate: store not found")

	// ErrSlotNotFound возвращается, когда запрошенного окна нет в сетке слотов на дату
	ErrSlotNotFound = errors.New("gate: slot is not offered on this date")

	// ErrSlotInPast возвращается для слотов раньше текущего момента с учётом минимального запаса
	ErrSlotInPast = errors.New("gate: slot starts too soon or is in the past")

	// ErrSlotFull возвращается, когда в слоте нет свободных мест
	ErrSlotFull = errors.New("gate: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("gate: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("gate: internal error")
)
