package get_available_dates

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-StoreSlots/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	StoreID     int64    `json:"storeId"`
	Method      string   `json:"method"`
	StartDate   string   `json:"startDate"`
	HorizonDays int      `json:"horizonDays"`
	ZoneKey     string   `json:"zoneKey,omitempty"`
	Dates       []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = domain.FormatDate(d)
	}

	return &AvailableDatesResponse{
		StoreID:     resp.StoreID,
		Method:      string(resp.Method),
		StartDate:   domain.FormatDate(resp.StartDate),
		HorizonDays: resp.HorizonDays,
		ZoneKey:     resp.ZoneKey,
		Dates:       dates,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(storeID int64, query url.Values) (*getAvailableDates.Request, error) {
	req := &getAvailableDates.Request{
		StoreID: storeID,
		Method:  domain.FulfillmentMethod(query.Get("method")),
		ZipCode: query.Get("zipCode"),
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = date
	}

	if raw := query.Get("horizonDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("horizonDays: %w", err)
		}
		req.HorizonDays = days
	}

	return req, nil
}
