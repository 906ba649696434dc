package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-StoreSlots/internal/usecase/get_available_dates"
)

const (
	msgInvalidStoreID = "некорректный ID магазина"
	msgInvalidQuery   = "некорректные параметры запроса"
	msgStoreNotFound  = "магазин не найден"
	msgInvalidZip     = "некорректный ZIP, ожидается NNNNN или NNNNN-NNNN"
	msgUnknownZone    = "доставка по этому ZIP не выполняется"
	msgInvalidMethod  = "method должен быть pickup или delivery"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/available-dates
// Query params: method (pickup|delivery), startDate (YYYY-MM-DD), horizonDays, zipCode
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/available-dates - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(storeID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /stores/{id}/available-dates - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidMethod)
		case errors.Is(err, getAvailableDates.ErrInvalidZipFormat):
			handlers.RespondBadRequest(w, msgInvalidZip)
		case errors.Is(err, getAvailableDates.ErrUnknownZone):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgUnknownZone)
		case errors.Is(err, getAvailableDates.ErrStoreNotFound):
			h.logger.Warn("GET /stores/{id}/available-dates - Store not found: store_id=%d", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)
		default:
			h.logger.Error("GET /stores/{id}/available-dates - Failed to get dates: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
