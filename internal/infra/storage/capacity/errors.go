package capacity

import "errors"

var (
	// ErrCapacityNotFound возвращается, когда по слоту ещё не было бронирований
	ErrCapacityNotFound = errors.New("capacity.repository: slot capacity not found")

	// ErrCapacityExceeded возвращается, когда условное увеличение счётчика не прошло
	ErrCapacityExceeded = errors.New("capacity.repository: slot capacity exceeded")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
