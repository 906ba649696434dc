package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery"
	"github.com/m04kA/SMC-StoreSlots/internal/service/schedule"
	"github.com/m04kA/SMC-StoreSlots/internal/service/slots"
)

// UseCase use case для получения дат, на которые есть свободные слоты
type UseCase struct {
	settings       SettingsProvider
	generator      SlotGenerator
	delivery       DeliveryService
	horizon        HorizonConfig
	minLeadMinutes int
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsProvider,
	generator SlotGenerator,
	delivery DeliveryService,
	horizon HorizonConfig,
	minLeadMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:       settings,
		generator:      generator,
		delivery:       delivery,
		horizon:        horizon,
		minLeadMinutes: minLeadMinutes,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: store=%d, method=%s, horizon=%d", req.StoreID, req.Method, req.HorizonDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	today := domain.DateOnly(now)
	start := today
	if !req.StartDate.IsZero() {
		start = domain.DateOnly(req.StartDate)
	}

	resp := &Response{
		StoreID:     req.StoreID,
		Method:      req.Method,
		StartDate:   start,
		HorizonDays: normalizeHorizon(req.HorizonDays, uc.horizon),
		Dates:       []time.Time{},
	}

	// 2. Для доставки проверяем ZIP до расчёта дат
	if req.Method == domain.MethodDelivery && req.ZipCode != "" {
		zoneKey, err := uc.delivery.ResolveZone(ctx, req.ZipCode)
		if err != nil {
			switch {
			case errors.Is(err, delivery.ErrInvalidZipFormat):
				return nil, fmt.Errorf("%w: %q", ErrInvalidZipFormat, req.ZipCode)
			case errors.Is(err, delivery.ErrUnknownZone):
				return nil, fmt.Errorf("%w: %q", ErrUnknownZone, req.ZipCode)
			default:
				uc.logger.Error("GetAvailableDates: failed to resolve zip %q: %v", req.ZipCode, err)
				return nil, fmt.Errorf("%w: failed to resolve zone: %v", ErrInternal, err)
			}
		}
		resp.ZoneKey = zoneKey
	}

	// 3. Получаем настройки магазина
	settings, err := uc.settings.GetSettings(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, schedule.ErrStoreNotFound) {
			uc.logger.Warn("GetAvailableDates: store=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get settings store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	if req.Method == domain.MethodPickup && !settings.IsPickupEnabled {
		uc.logger.Info("GetAvailableDates: pickup is disabled for store=%d", req.StoreID)
		return resp, nil
	}

	// 4. Кандидаты: окно без прошедших дат
	candidates := make([]time.Time, 0, resp.HorizonDays)
	for i := 0; i < resp.HorizonDays; i++ {
		day := start.AddDate(0, 0, i)
		if day.Before(today) {
			continue
		}
		candidates = append(candidates, day)
	}
	if len(candidates) == 0 {
		return resp, nil
	}

	// 5. Для доставки исключаем даты блокировки
	if req.Method == domain.MethodDelivery {
		blocked, err := uc.delivery.BlockedDates(ctx, candidates[0], candidates[len(candidates)-1])
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to get blockouts: %v", err)
			return nil, fmt.Errorf("%w: failed to get blockouts: %v", ErrInternal, err)
		}
		candidates = excludeDates(candidates, blocked)
		if len(candidates) == 0 {
			return resp, nil
		}
	}

	// 6. Дата попадает в ответ, если в ней есть хотя бы один свободный слот
	days, err := uc.generator.GenerateRange(ctx, req.StoreID, candidates)
	if err != nil {
		if errors.Is(err, slots.ErrStoreNotFound) {
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to generate slots store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	cutoff := domain.NewLeadCutoff(now, uc.minLeadMinutes)
	for _, day := range days {
		if hasBookableSlot(day, cutoff) {
			resp.Dates = append(resp.Dates, day.Date)
		}
	}

	uc.logger.Info("GetAvailableDates: store=%d, method=%s, found %d dates", req.StoreID, req.Method, len(resp.Dates))
	return resp, nil
}

func excludeDates(dates []time.Time, blocked map[time.Time]struct{}) []time.Time {
	if len(blocked) == 0 {
		return dates
	}
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if _, ok := blocked[domain.DateOnly(d)]; ok {
			continue
		}
		result = append(result, d)
	}
	return result
}

func hasBookableSlot(day slots.DaySlots, cutoff domain.LeadCutoff) bool {
	for i := range day.Slots {
		if day.Slots[i].IsAvailable() && cutoff.Allows(day.Date, day.Slots[i].StartTime) {
			return true
		}
	}
	return false
}
