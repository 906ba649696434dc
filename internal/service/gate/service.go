package gate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/internal/service/slots"
	"github.com/m04kA/SMC-StoreSlots/pkg/types"
)

// Service проверка выбранного слота перед оформлением
// Результат рекомендательный: окончательное решение принимает резервирование в журнале
type Service struct {
	generator      SlotGenerator
	timeProvider   TimeProvider
	minLeadMinutes int
	logger         Logger
}

// NewService создает новый экземпляр проверки слотов
func NewService(generator SlotGenerator, timeProvider TimeProvider, minLeadMinutes int, logger Logger) *Service {
	return &Service{
		generator:      generator,
		timeProvider:   timeProvider,
		minLeadMinutes: minLeadMinutes,
		logger:         logger,
	}
}

// Validate проверяет, что окно [start, end] есть в сетке на дату и в нём есть место
// Возвращает слот с текущими счётчиками
func (s *Service) Validate(ctx context.Context, storeID int64, date time.Time, start, end types.TimeString) (*domain.TimeSlot, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	// 1. Прошедшие слоты и слоты ближе минимального запаса не принимаются
	cutoff := domain.NewLeadCutoff(s.timeProvider.Now(), s.minLeadMinutes)
	if !cutoff.Allows(date, start) {
		s.logger.Info("Validate: store=%d date=%s slot=%s-%s is before cutoff",
			storeID, domain.FormatDate(date), start, end)
		return nil, ErrSlotInPast
	}

	// 2. Пересчитываем слоты на дату
	generated, err := s.generator.GenerateSlotsFresh(ctx, storeID, date)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrStoreNotFound):
			return nil, ErrStoreNotFound
		case errors.Is(err, slots.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			s.logger.Error("Validate: failed to generate slots store=%d date=%s: %v",
				storeID, domain.FormatDate(date), err)
			return nil, fmt.Errorf("%w: Validate - generate slots: %v", ErrInternal, err)
		}
	}

	// 3. Требуем точного совпадения окна
	for i := range generated {
		slot := generated[i]
		if slot.StartTime != start || slot.EndTime != end {
			continue
		}
		if !slot.IsAvailable() {
			s.logger.Info("Validate: store=%d date=%s slot=%s-%s is full (%d/%d)",
				storeID, domain.FormatDate(date), start, end, slot.CurrentOrders, slot.MaxOrders)
			return nil, ErrSlotFull
		}
		return &slot, nil
	}

	s.logger.Info("Validate: store=%d date=%s slot=%s-%s is not in grid",
		storeID, domain.FormatDate(date), start, end)
	return nil, ErrSlotNotFound
}
