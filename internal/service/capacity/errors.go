package capacity

import "errors"

var (
	// ErrCapacityNotFound возвращается, когда по слоту ещё не было бронирований
	ErrCapacityNotFound = errors.New("capacity: slot capacity not found")

	// ErrCapacityExceeded возвращается, когда в слоте не осталось мест
	ErrCapacityExceeded = errors.New("capacity: slot no longer available, please pick another")

	// ErrInvalidInput возвращается при некорректном ключе слота
	ErrInvalidInput = errors.New("capacity: invalid input data")

	// ErrTransient возвращается при сбое хранилища, после которого запрос можно повторить
	ErrTransient = errors.New("capacity: transient storage error")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)
