package slot_capacity

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/capacity"
)

const (
	msgInvalidStoreID = "некорректный ID магазина"
	msgInvalidSlot    = "некорректная дата или время слота"
	msgNoBookings     = "по этому слоту ещё не было бронирований"
)

type CapacityReader interface {
	GetCapacity(ctx context.Context, key domain.SlotKey) (*domain.SlotCapacity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CapacityResponse загрузка слота
type CapacityResponse struct {
	StoreID       int64      `json:"storeId"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	MaxOrders     int        `json:"maxOrders"`
	CurrentOrders int        `json:"currentOrders"`
	Remaining     int        `json:"remaining"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

type Handler struct {
	reader CapacityReader
	logger Logger
}

func NewHandler(reader CapacityReader, logger Logger) *Handler {
	return &Handler{
		reader: reader,
		logger: logger,
	}
}

// Handle GET /api/v1/admin/stores/{storeId}/capacity?date=&startTime=&endTime=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	query := r.URL.Query()
	date, start, end, err := handlers.ParseSlotWindow(query.Get("date"), query.Get("startTime"), query.Get("endTime"))
	if err != nil {
		h.logger.Warn("GET /admin/stores/{id}/capacity - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	key := domain.SlotKey{StoreID: storeID, Date: date, StartTime: start, EndTime: end}
	c, err := h.reader.GetCapacity(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrCapacityNotFound):
			handlers.RespondNotFound(w, msgNoBookings)
		case errors.Is(err, capacity.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /admin/stores/{id}/capacity - Failed: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := CapacityResponse{
		StoreID:       storeID,
		Date:          domain.FormatDate(date),
		StartTime:     start.String(),
		EndTime:       end.String(),
		MaxOrders:     c.MaxOrders,
		CurrentOrders: c.CurrentOrders,
		Remaining:     c.Remaining(),
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		resp.UpdatedAt = &updated
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
