package orderlog

import "errors"

var (
	// ErrOpenWorkbook возвращается, когда файл журнала нельзя открыть или создать
	ErrOpenWorkbook = errors.New("orderlog: failed to open workbook")

	// ErrWriteRow возвращается при ошибке записи строки
	ErrWriteRow = errors.New("orderlog: failed to write row")

	// ErrSaveWorkbook возвращается при ошибке сохранения файла
	ErrSaveWorkbook = errors.New("orderlog: failed to save workbook")
)
