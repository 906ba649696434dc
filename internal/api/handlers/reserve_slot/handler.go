package reserve_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	validateAndReserve "github.com/m04kA/SMC-StoreSlots/internal/usecase/validate_and_reserve"
)

const (
	msgInvalidStoreID     = "некорректный ID магазина"
	msgInvalidBody        = "некорректное тело запроса"
	msgInvalidSlot        = "некорректная дата или время слота"
	msgStoreNotFound      = "магазин не найден"
	msgStorageUnavailable = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase ValidateAndReserveUseCase
	logger  Logger
}

func NewHandler(useCase ValidateAndReserveUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stores/{storeId}/reservations
// Body: {date, startTime, endTime, method?, orderRef?}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /stores/{id}/reservations - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var req ReserveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stores/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(storeID)
	if err != nil {
		h.logger.Warn("POST /stores/{id}/reservations - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateAndReserve.ErrCapacityExceeded):
			handlers.RespondJSON(w, http.StatusConflict, rejected(validateAndReserve.ErrCapacityExceeded))
		case errors.Is(err, validateAndReserve.ErrSlotNotOffered):
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, rejected(validateAndReserve.ErrSlotNotOffered))
		case errors.Is(err, validateAndReserve.ErrSlotInPast):
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, rejected(validateAndReserve.ErrSlotInPast))
		case errors.Is(err, validateAndReserve.ErrPickupDisabled):
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, rejected(validateAndReserve.ErrPickupDisabled))
		case errors.Is(err, validateAndReserve.ErrDeliveryUnavailable):
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, rejected(validateAndReserve.ErrDeliveryUnavailable))
		case errors.Is(err, validateAndReserve.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, validateAndReserve.ErrStoreNotFound):
			handlers.RespondNotFound(w, msgStoreNotFound)
		case errors.Is(err, validateAndReserve.ErrTransient):
			h.logger.Warn("POST /stores/{id}/reservations - Storage unavailable: store_id=%d, error=%v", storeID, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)
		default:
			h.logger.Error("POST /stores/{id}/reservations - Failed to reserve: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stores/{id}/reservations - Slot reserved: store_id=%d, date=%s, slot=%s-%s",
		storeID, req.Date, req.StartTime, req.EndTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
