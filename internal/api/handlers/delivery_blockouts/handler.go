package delivery_blockouts

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery/models"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidDate     = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidFlag     = "includeExpired должен быть true или false"
	msgBlockoutMissing = "блокировка на эту дату не найдена"
)

type BlockoutService interface {
	ListBlockouts(ctx context.Context, includeExpired bool) ([]domain.DeliveryBlockout, error)
	CreateBlockout(ctx context.Context, req *models.CreateBlockoutRequest) (*domain.DeliveryBlockout, error)
	DeleteBlockout(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BlockoutDTO дата блокировки доставки
type BlockoutDTO struct {
	Date      string     `json:"date"`
	Reason    *string    `json:"reason,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// CreateBlockoutRequest HTTP request model
type CreateBlockoutRequest struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

func fromBlockout(b domain.DeliveryBlockout) BlockoutDTO {
	dto := BlockoutDTO{Date: domain.FormatDate(b.Date), Reason: b.Reason}
	if !b.CreatedAt.IsZero() {
		created := b.CreatedAt
		dto.CreatedAt = &created
	}
	return dto
}

type Handler struct {
	service BlockoutService
	logger  Logger
}

func NewHandler(service BlockoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/delivery/blockouts?includeExpired=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	includeExpired := false
	if raw := r.URL.Query().Get("includeExpired"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
		includeExpired = parsed
	}

	blockouts, err := h.service.ListBlockouts(r.Context(), includeExpired)
	if err != nil {
		h.logger.Error("GET /admin/delivery/blockouts - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := make([]BlockoutDTO, 0, len(blockouts))
	for _, b := range blockouts {
		resp = append(resp, fromBlockout(b))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Create POST /api/v1/admin/delivery/blockouts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/delivery/blockouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	blockout, err := h.service.CreateBlockout(r.Context(), &models.CreateBlockoutRequest{Date: date, Reason: req.Reason})
	if err != nil {
		if errors.Is(err, delivery.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/delivery/blockouts - Failed: date=%s, error=%v", req.Date, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, fromBlockout(*blockout))
}

// Delete DELETE /api/v1/admin/delivery/blockouts/{date}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteBlockout(r.Context(), date); err != nil {
		if errors.Is(err, delivery.ErrBlockoutNotFound) {
			handlers.RespondNotFound(w, msgBlockoutMissing)
			return
		}
		h.logger.Error("DELETE /admin/delivery/blockouts/{date} - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
