package get_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/slots"
)

const (
	msgInvalidStoreID = "некорректный ID магазина"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStoreNotFound  = "магазин не найден"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	StoreID int64                   `json:"storeId"`
	Date    string                  `json:"date"`
	Slots   []handlers.SlotResponse `json:"slots"`
}

type Handler struct {
	generator SlotGenerator
	logger    Logger
}

func NewHandler(generator SlotGenerator, logger Logger) *Handler {
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("GET /stores/{id}/slots - Invalid store ID: %q", mux.Vars(r)["storeId"])
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	generated, err := h.generator.GenerateSlots(r.Context(), storeID, date)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrStoreNotFound):
			handlers.RespondNotFound(w, msgStoreNotFound)
		default:
			h.logger.Error("GET /stores/{id}/slots - Failed to generate slots: store_id=%d, date=%s, error=%v",
				storeID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := SlotsResponse{
		StoreID: storeID,
		Date:    domain.FormatDate(date),
		Slots:   make([]handlers.SlotResponse, 0, len(generated)),
	}
	for i := range generated {
		resp.Slots = append(resp.Slots, handlers.FromTimeSlot(&generated[i]))
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
