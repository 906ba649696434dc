package delivery

import "errors"

var (
	// ErrBlockoutNotFound возвращается, когда дата блокировки не найдена
	ErrBlockoutNotFound = errors.New("delivery.repository: blockout date not found")

	// ErrFeeZoneNotFound возвращается, когда зона доставки не найдена
	ErrFeeZoneNotFound = errors.New("delivery.repository: fee zone not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("delivery.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("delivery.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("delivery.repository: failed to scan row")
)
