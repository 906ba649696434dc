package reserve_slot

import (
	"github.com/m04kA/SMC-StoreSlots/internal/api/handlers"
	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	validateAndReserve "github.com/m04kA/SMC-StoreSlots/internal/usecase/validate_and_reserve"
)

// ReserveRequest HTTP request model
type ReserveRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Method    string `json:"method,omitempty"`
	OrderRef  string `json:"orderRef,omitempty"`
}

// ReserveResponse HTTP response model
type ReserveResponse struct {
	OK     bool                   `json:"ok"`
	Reason string                 `json:"reason,omitempty"`
	Slot   *handlers.SlotResponse `json:"slot,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *ReserveRequest) ToUseCaseRequest(storeID int64) (*validateAndReserve.Request, error) {
	date, start, end, err := handlers.ParseSlotWindow(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &validateAndReserve.Request{
		StoreID:   storeID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Method:    domain.FulfillmentMethod(r.Method),
		OrderRef:  r.OrderRef,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateAndReserve.Response) *ReserveResponse {
	slot := handlers.FromTimeSlot(&resp.Slot)
	return &ReserveResponse{OK: true, Slot: &slot}
}

func rejected(reason error) *ReserveResponse {
	return &ReserveResponse{OK: false, Reason: reason.Error()}
}
