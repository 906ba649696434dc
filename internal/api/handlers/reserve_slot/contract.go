package reserve_slot

import (
	"context"

	validateAndReserve "github.com/m04kA/SMC-StoreSlots/internal/usecase/validate_and_reserve"
)

type ValidateAndReserveUseCase interface {
	Execute(ctx context.Context, req *validateAndReserve.Request) (*validateAndReserve.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
