package fee_zones

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery/models"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgInvalidAmount = "некорректная сумма"
	msgZoneNotFound  = "тариф зоны не найден"
)

type FeeZoneService interface {
	ListFeeZones(ctx context.Context) ([]domain.FeeZone, error)
	UpsertFeeZone(ctx context.Context, req *models.UpsertFeeZoneRequest) (*domain.FeeZone, error)
	DeleteFeeZone(ctx context.Context, zoneKey string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FeeZoneDTO тариф зоны; суммы строками с двумя знаками после точки
type FeeZoneDTO struct {
	ZoneKey             string     `json:"zoneKey"`
	Fee                 string     `json:"fee"`
	FreeDeliveryMinimum string     `json:"freeDeliveryMinimum"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// UpsertFeeZoneRequest HTTP request model
type UpsertFeeZoneRequest struct {
	Fee                 string `json:"fee"`
	FreeDeliveryMinimum string `json:"freeDeliveryMinimum"`
}

func fromFeeZone(z domain.FeeZone) FeeZoneDTO {
	dto := FeeZoneDTO{
		ZoneKey:             z.ZoneKey,
		Fee:                 z.Fee.StringFixed(2),
		FreeDeliveryMinimum: z.FreeDeliveryMinimum.StringFixed(2),
	}
	if !z.UpdatedAt.IsZero() {
		updated := z.UpdatedAt
		dto.UpdatedAt = &updated
	}
	return dto
}

type Handler struct {
	service FeeZoneService
	logger  Logger
}

func NewHandler(service FeeZoneService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/delivery/fee-zones
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.service.ListFeeZones(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/delivery/fee-zones - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := make([]FeeZoneDTO, 0, len(zones))
	for _, z := range zones {
		resp = append(resp, fromFeeZone(z))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Upsert PUT /api/v1/admin/delivery/fee-zones/{zoneKey}
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	zoneKey := mux.Vars(r)["zoneKey"]

	var req UpsertFeeZoneRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/delivery/fee-zones/{zoneKey} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	fee, err := decimal.NewFromString(req.Fee)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}
	minimum, err := decimal.NewFromString(req.FreeDeliveryMinimum)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}

	zone, err := h.service.UpsertFeeZone(r.Context(), &models.UpsertFeeZoneRequest{
		ZoneKey:             zoneKey,
		Fee:                 fee,
		FreeDeliveryMinimum: minimum,
	})
	if err != nil {
		if errors.Is(err, delivery.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /admin/delivery/fee-zones/{zoneKey} - Failed: zone=%q, error=%v", zoneKey, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromFeeZone(*zone))
}

// Delete DELETE /api/v1/admin/delivery/fee-zones/{zoneKey}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	zoneKey := mux.Vars(r)["zoneKey"]

	if err := h.service.DeleteFeeZone(r.Context(), zoneKey); err != nil {
		if errors.Is(err, delivery.ErrFeeZoneNotFound) {
			handlers.RespondNotFound(w, msgZoneNotFound)
			return
		}
		h.logger.Error("DELETE /admin/delivery/fee-zones/{zoneKey} - Failed: zone=%q, error=%v", zoneKey, err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
