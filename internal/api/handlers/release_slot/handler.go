package release_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/capacity"
)

const (
	msgInvalidStoreID     = "некорректный ID магазина"
	msgInvalidBody        = "некорректное тело запроса"
	msgInvalidSlot        = "некорректная дата или время слота"
	msgStorageUnavailable = "хранилище временно недоступно, повторите запрос"
)

// ReleaseRequest HTTP request model
type ReleaseRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ReleaseResponse HTTP response model
type ReleaseResponse struct {
	OK bool `json:"ok"`
}

type Handler struct {
	ledger CapacityLedger
	logger Logger
}

func NewHandler(ledger CapacityLedger, logger Logger) *Handler {
	return &Handler{
		ledger: ledger,
		logger: logger,
	}
}

// Handle POST /api/v1/stores/{storeId}/reservations/release
// Body: {date, startTime, endTime}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /stores/{id}/reservations/release - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var req ReleaseRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stores/{id}/reservations/release - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, start, end, err := handlers.ParseSlotWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	key := domain.SlotKey{StoreID: storeID, Date: date, StartTime: start, EndTime: end}
	if err := h.ledger.Release(r.Context(), key); err != nil {
		switch {
		case errors.Is(err, capacity.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, capacity.ErrTransient):
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)
		default:
			h.logger.Error("POST /stores/{id}/reservations/release - Failed to release: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ReleaseResponse{OK: true})
}
