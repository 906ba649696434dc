package validate_and_reserve

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/integrations/orderlog"
	"github.com/m04kA/SMC-StoreSlots/internal/service/capacity"
	"github.com/m04kA/SMC-StoreSlots/internal/service/gate"
	"github.com/m04kA/SMC-StoreSlots/internal/service/schedule"
)

// UseCase use case проверки и резервирования слота при оформлении заказа
type UseCase struct {
	settings     SettingsProvider
	gate         SlotGate
	ledger       CapacityLedger
	blockouts    DeliveryBlockouts
	orderLog     OrderLog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; orderLog может быть nil
func NewUseCase(
	settings SettingsProvider,
	gate SlotGate,
	ledger CapacityLedger,
	blockouts DeliveryBlockouts,
	orderLog OrderLog,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:     settings,
		gate:         gate,
		ledger:       ledger,
		blockouts:    blockouts,
		orderLog:     orderLog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case: проверка слота, резервирование, запись в журнал заказов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateAndReserve: store=%d, date=%s, slot=%s-%s, method=%s",
		req.StoreID, domain.FormatDate(req.Date), req.StartTime, req.EndTime, req.Method)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateAndReserve: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем доступность способа получения
	settings, err := uc.settings.GetSettings(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, schedule.ErrStoreNotFound) {
			uc.logger.Warn("ValidateAndReserve: store=%d not found", req.StoreID)
			return nil, ErrStoreNotFound
		}
		uc.logger.Error("ValidateAndReserve: failed to get settings store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	switch req.Method {
	case domain.MethodPickup:
		if !settings.IsPickupEnabled {
			uc.logger.Info("ValidateAndReserve: pickup is disabled for store=%d", req.StoreID)
			return nil, ErrPickupDisabled
		}
	case domain.MethodDelivery:
		blocked, err := uc.blockouts.IsBlocked(ctx, req.Date)
		if err != nil {
			uc.logger.Error("ValidateAndReserve: failed to check blockouts date=%s: %v", domain.FormatDate(req.Date), err)
			return nil, fmt.Errorf("%w: failed to check blockouts: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Info("ValidateAndReserve: delivery is blocked on date=%s", domain.FormatDate(req.Date))
			return nil, ErrDeliveryUnavailable
		}
	}

	// 3. Проверяем слот по свежей сетке
	slot, err := uc.gate.Validate(ctx, req.StoreID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, uc.mapGateError(req, err)
	}

	// 4. Резервируем; при сбое хранилища повторяем один раз
	key := slot.Key()
	row, err := uc.ledger.Reserve(ctx, key, slot.MaxOrders)
	if errors.Is(err, capacity.ErrTransient) {
		uc.logger.Warn("ValidateAndReserve: retrying reserve store=%d date=%s slot=%s-%s after: %v",
			req.StoreID, domain.FormatDate(req.Date), req.StartTime, req.EndTime, err)
		row, err = uc.ledger.Reserve(ctx, key, slot.MaxOrders)
	}
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		case errors.Is(err, capacity.ErrTransient):
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		case errors.Is(err, capacity.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("ValidateAndReserve: failed to reserve: %v", err)
			return nil, fmt.Errorf("%w: failed to reserve: %v", ErrInternal, err)
		}
	}

	slot.CurrentOrders = row.CurrentOrders
	slot.MaxOrders = row.MaxOrders

	// 5. Журнал заказов: ошибка записи не отменяет резервирование
	uc.appendOrderLog(ctx, req)

	uc.logger.Info("ValidateAndReserve: reserved store=%d date=%s slot=%s-%s (%d/%d)",
		req.StoreID, domain.FormatDate(req.Date), req.StartTime, req.EndTime, slot.CurrentOrders, slot.MaxOrders)

	return &Response{Slot: *slot}, nil
}

func (uc *UseCase) mapGateError(req *Request, err error) error {
	switch {
	case errors.Is(err, gate.ErrStoreNotFound):
		return ErrStoreNotFound
	case errors.Is(err, gate.ErrSlotNotFound):
		return ErrSlotNotOffered
	case errors.Is(err, gate.ErrSlotInPast):
		return ErrSlotInPast
	case errors.Is(err, gate.ErrSlotFull):
		return ErrCapacityExceeded
	case errors.Is(err, gate.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("ValidateAndReserve: failed to validate slot store=%d: %v", req.StoreID, err)
		return fmt.Errorf("%w: failed to validate slot: %v", ErrInternal, err)
	}
}

func (uc *UseCase) appendOrderLog(ctx context.Context, req *Request) {
	if uc.orderLog == nil || req.OrderRef == "" {
		return
	}

	entry := orderlog.Entry{
		Timestamp: uc.timeProvider.Now(),
		OrderRef:  req.OrderRef,
		Method:    string(req.Method),
		StoreID:   req.StoreID,
		Date:      domain.FormatDate(req.Date),
		StartTime: req.StartTime.String(),
		EndTime:   req.EndTime.String(),
	}
	if err := uc.orderLog.Append(ctx, entry); err != nil {
		uc.logger.Warn("ValidateAndReserve: failed to append order log order=%s: %v", req.OrderRef, err)
	}
}
