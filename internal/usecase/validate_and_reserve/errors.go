package validate_and_reserve

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("store not found")

	// ErrPickupDisabled возвращается, когда самовывоз в магазине выключен
	ErrPickupDisabled = errors.New("pickup is disabled for this store")

	// ErrDeliveryUnavailable возвращается, когда доставка на дату заблокирована
	ErrDeliveryUnavailable = errors.New("delivery is not available on this date")

	// ErrSlotNotOffered возвращается, когда окна нет в сетке слотов на дату
	ErrSlotNotOffered = errors.New("slot is not offered on this date")

	// ErrSlotInPast возвращается для прошедших слотов и слотов ближе минимального запаса
	ErrSlotInPast = errors.New("slot starts too soon or is in the past")

	// ErrCapacityExceeded возвращается, когда мест в слоте не осталось
	ErrCapacityExceeded = errors.New("slot no longer available, please pick another")

	// ErrTransient возвращается, когда хранилище недоступно и после повтора
	ErrTransient = errors.New("storage temporarily unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
