package zipzones

import "errors"

var (
	// ErrInvalidZipFormat возвращается для ZIP не в формате NNNNN или NNNNN-NNNN
	ErrInvalidZipFormat = errors.New("zipzones: invalid zip format")

	// ErrUnknownZone возвращается, когда ZIP не входит ни в одну зону
	ErrUnknownZone = errors.New("zipzones: zip is not mapped to a zone")

	// ErrLoad возвращается при ошибке чтения справочника
	ErrLoad = errors.New("zipzones: failed to load reference data")
)
