package store_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/schedule"
)

const (
	msgInvalidStoreID    = "некорректный ID магазина"
	msgInvalidBody       = "некорректное тело запроса"
	msgStoreNotFound     = "настройки магазина не найдены"
	msgMissingPickupFlag = "isPickupEnabled обязателен"
	msgMissingSchedule   = "weeklySchedule обязателен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/admin/stores/{storeId}/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r, "GET /admin/stores/{id}/settings")
	if !ok {
		return
	}

	settings, err := h.service.GetSettings(r.Context(), storeID)
	h.respond(w, "GET /admin/stores/{id}/settings", storeID, settings, err)
}

// UpdateSchedule PUT /api/v1/admin/stores/{storeId}/schedule
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/stores/{id}/schedule"
	storeID, ok := h.storeID(w, r, route)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.WeeklySchedule == nil {
		handlers.RespondBadRequest(w, msgMissingSchedule)
		return
	}

	week, err := handlers.ToWeeklySchedule(req.WeeklySchedule)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	settings, err := h.service.UpdateSchedule(r.Context(), storeID, week)
	h.respond(w, route, storeID, settings, err)
}

// UpdateHolidays PUT /api/v1/admin/stores/{storeId}/holidays
func (h *Handler) UpdateHolidays(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/stores/{id}/holidays"
	storeID, ok := h.storeID(w, r, route)
	if !ok {
		return
	}

	var req UpdateHolidaysRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	dates, err := handlers.ToDates(req.HolidayDates)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	settings, err := h.service.UpdateHolidayDates(r.Context(), storeID, dates)
	h.respond(w, route, storeID, settings, err)
}

// UpdateSpecialHours PUT /api/v1/admin/stores/{storeId}/special-hours
func (h *Handler) UpdateSpecialHours(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/stores/{id}/special-hours"
	storeID, ok := h.storeID(w, r, route)
	if !ok {
		return
	}

	var req UpdateSpecialHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	overrides, err := handlers.ToSpecialHours(req.SpecialHours)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	settings, err := h.service.UpdateSpecialHours(r.Context(), storeID, overrides)
	h.respond(w, route, storeID, settings, err)
}

// SetPickupEnabled PUT /api/v1/admin/stores/{storeId}/pickup
func (h *Handler) SetPickupEnabled(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/stores/{id}/pickup"
	storeID, ok := h.storeID(w, r, route)
	if !ok {
		return
	}

	var req SetPickupEnabledRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.IsPickupEnabled == nil {
		handlers.RespondBadRequest(w, msgMissingPickupFlag)
		return
	}

	settings, err := h.service.SetPickupEnabled(r.Context(), storeID, *req.IsPickupEnabled)
	h.respond(w, route, storeID, settings, err)
}

func (h *Handler) storeID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil || storeID <= 0 {
		h.logger.Warn("%s - Invalid store ID: %q", route, mux.Vars(r)["storeId"])
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return 0, false
	}
	return storeID, true
}

func (h *Handler) respond(w http.ResponseWriter, route string, storeID int64, settings *domain.StoreSettings, err error) {
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, schedule.ErrStoreNotFound):
			handlers.RespondNotFound(w, msgStoreNotFound)
		default:
			h.logger.Error("%s - Failed: store_id=%d, error=%v", route, storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromStoreSettings(settings))
}
