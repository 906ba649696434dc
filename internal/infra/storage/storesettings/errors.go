package storesettings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настроек магазина нет
	ErrSettingsNotFound = errors.New("storesettings.repository: store settings not found")

	// ErrCorruptRecord возвращается, когда сохранённые данные не проходят доменную валидацию
	ErrCorruptRecord = errors.New("storesettings.repository: corrupt record")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("storesettings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("storesettings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("storesettings.repository: failed to scan row")
)
