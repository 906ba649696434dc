package get_delivery_fee

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery/models"
)

type stubResolver struct {
	zip      string
	subtotal decimal.Decimal
	quote    *models.FeeQuote
	err      error
}

func (s *stubResolver) GetDeliveryFee(_ context.Context, zip string, subtotal decimal.Decimal) (*models.FeeQuote, error) {
	s.zip = zip
	s.subtotal = subtotal
	return s.quote, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_Quote(t *testing.T) {
	resolver := &stubResolver{quote: &models.FeeQuote{
		ZoneKey:             "manhattan",
		Fee:                 decimal.RequireFromString("5"),
		FreeDeliveryMinimum: decimal.RequireFromString("50"),
		IsFree:              false,
	}}
	h := NewHandler(resolver, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/delivery/fee?zipCode=10001&subtotal=49.99", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp FeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, FeeResponse{ZoneKey: "manhattan", Fee: "5.00", FreeDeliveryMinimum: "50.00"}, resp)
	assert.Equal(t, "10001", resolver.zip)
	assert.True(t, resolver.subtotal.Equal(decimal.RequireFromString("49.99")))
}

func TestHandle_SubtotalDefaultsToZero(t *testing.T) {
	resolver := &stubResolver{quote: &models.FeeQuote{ZoneKey: "brooklyn"}}
	rec := httptest.NewRecorder()
	NewHandler(resolver, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/delivery/fee?zipCode=11201", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resolver.subtotal.IsZero())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{"missing zip", "/delivery/fee", nil, http.StatusBadRequest},
		{"bad subtotal", "/delivery/fee?zipCode=10001&subtotal=abc", nil, http.StatusBadRequest},
		{"bad zip format", "/delivery/fee?zipCode=1234", delivery.ErrInvalidZipFormat, http.StatusBadRequest},
		{"unknown zone", "/delivery/fee?zipCode=99999", delivery.ErrUnknownZone, http.StatusUnprocessableEntity},
		{"internal", "/delivery/fee?zipCode=10001", delivery.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubResolver{err: tt.err}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
