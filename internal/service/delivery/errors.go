package delivery

import "errors"

var (
	// ErrInvalidZipFormat возвращается для ZIP не в формате NNNNN или NNNNN-NNNN
	ErrInvalidZipFormat = errors.New("delivery: invalid zip format")

	// ErrUnknownZone возвращается, когда для ZIP нет зоны или тарифа; доставка недоступна
	ErrUnknownZone = errors.New("delivery: unknown delivery zone")

	// ErrBlockoutNotFound возвращается, когда дата блокировки не найдена
	ErrBlockoutNotFound = errors.New("delivery: blockout date not found")

	// ErrFeeZoneNotFound возвращается, когда тариф зоны не найден
	ErrFeeZoneNotFound = errors.New("delivery: fee zone not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delivery: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("delivery: internal error")
)
