package get_delivery_fee

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery/models"
)

const (
	msgMissingZip      = "zipCode обязателен"
	msgInvalidSubtotal = "некорректная сумма заказа"
	msgInvalidZip      = "некорректный ZIP, ожидается NNNNN или NNNNN-NNNN"
	msgUnknownZone     = "доставка по этому ZIP не выполняется"
)

// FeeResponse HTTP response model; суммы строками с двумя знаками после точки
type FeeResponse struct {
	ZoneKey             string `json:"zoneKey"`
	Fee                 string `json:"fee"`
	FreeDeliveryMinimum string `json:"freeDeliveryMinimum"`
	IsFree              bool   `json:"isFree"`
}

// FromQuote конвертирует расчёт в HTTP response
func FromQuote(q *models.FeeQuote) *FeeResponse {
	return &FeeResponse{
		ZoneKey:             q.ZoneKey,
		Fee:                 q.Fee.StringFixed(2),
		FreeDeliveryMinimum: q.FreeDeliveryMinimum.StringFixed(2),
		IsFree:              q.IsFree,
	}
}

type Handler struct {
	resolver DeliveryFeeResolver
	logger   Logger
}

func NewHandler(resolver DeliveryFeeResolver, logger Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/delivery/fee?zipCode=&subtotal=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	zip := query.Get("zipCode")
	if zip == "" {
		handlers.RespondBadRequest(w, msgMissingZip)
		return
	}

	subtotal := decimal.Zero
	if raw := query.Get("subtotal"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			h.logger.Warn("GET /delivery/fee - Invalid subtotal: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidSubtotal)
			return
		}
		subtotal = parsed
	}

	quote, err := h.resolver.GetDeliveryFee(r.Context(), zip, subtotal)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidZipFormat):
			handlers.RespondBadRequest(w, msgInvalidZip)
		case errors.Is(err, delivery.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSubtotal)
		case errors.Is(err, delivery.ErrUnknownZone):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgUnknownZone)
		default:
			h.logger.Error("GET /delivery/fee - Failed to get fee: zip=%q, error=%v", zip, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromQuote(quote))
}
