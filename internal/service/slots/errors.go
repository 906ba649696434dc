package slots

import "errors"

var (
	// ErrStoreNotFound возвращается, когда у магазина нет настроек
	ErrStoreNotFound = errors.New("slots: store not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
