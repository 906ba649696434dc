package domain

import "errors"

var (
	// ErrValidation нарушено ограничение доменной модели; текст обёртки называет конкретное ограничение
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDate дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date format")
)
