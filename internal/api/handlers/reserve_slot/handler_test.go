package reserve_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	validateAndReserve "github.com/m04kA/SMC-StoreSlots/internal/usecase/validate_and_reserve"
)

type stubUseCase struct {
	got  *validateAndReserve.Request
	resp *validateAndReserve.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *validateAndReserve.Request) (*validateAndReserve.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(t *testing.T, uc *stubUseCase, storeID, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/stores/{storeId}/reservations", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/stores/"+storeID+"/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"date":"2024-12-23","startTime":"10:00","endTime":"11:00","orderRef":"A-1"}`

func TestHandle_Success(t *testing.T) {
	date, err := domain.ParseDate("2024-12-23")
	require.NoError(t, err)
	uc := &stubUseCase{resp: &validateAndReserve.Response{Slot: domain.TimeSlot{
		StoreID: 7, Date: date, StartTime: "10:00", EndTime: "11:00", MaxOrders: 5, CurrentOrders: 3,
	}}}

	rec := serve(t, uc, "7", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ReserveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.NotNil(t, resp.Slot)
	assert.Equal(t, 3, resp.Slot.CurrentOrders)
	assert.True(t, resp.Slot.IsAvailable)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.StoreID)
	assert.Equal(t, "A-1", uc.got.OrderRef)
	assert.Equal(t, domain.FulfillmentMethod(""), uc.got.Method)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"capacity exceeded", validateAndReserve.ErrCapacityExceeded, http.StatusConflict, "slot no longer available, please pick another"},
		{"not offered", validateAndReserve.ErrSlotNotOffered, http.StatusUnprocessableEntity, validateAndReserve.ErrSlotNotOffered.Error()},
		{"in past", validateAndReserve.ErrSlotInPast, http.StatusUnprocessableEntity, validateAndReserve.ErrSlotInPast.Error()},
		{"pickup disabled", validateAndReserve.ErrPickupDisabled, http.StatusUnprocessableEntity, validateAndReserve.ErrPickupDisabled.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: fmt.Errorf("%w: Execute - reserve", tt.err)}

			rec := serve(t, uc, "7", validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp ReserveResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.OK)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.Nil(t, resp.Slot)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		storeID    string
		body       string
		err        error
		wantStatus int
	}{
		{"bad store id", "abc", validBody, nil, http.StatusBadRequest},
		{"bad json", "7", `{"date":`, nil, http.StatusBadRequest},
		{"unknown field", "7", `{"date":"2024-12-23","slot":"x"}`, nil, http.StatusBadRequest},
		{"bad time", "7", `{"date":"2024-12-23","startTime":"25:00","endTime":"11:00"}`, nil, http.StatusBadRequest},
		{"store not found", "7", validBody, validateAndReserve.ErrStoreNotFound, http.StatusNotFound},
		{"transient", "7", validBody, validateAndReserve.ErrTransient, http.StatusServiceUnavailable},
		{"internal", "7", validBody, validateAndReserve.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			rec := serve(t, uc, tt.storeID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
