package get_available_dates

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("store not found")

	// ErrInvalidZipFormat возвращается для ZIP не в формате NNNNN или NNNNN-NNNN
	ErrInvalidZipFormat = errors.New("invalid zip format")

	// ErrUnknownZone возвращается, когда по ZIP нет доставки
	ErrUnknownZone = errors.New("delivery is not available for this zip")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
