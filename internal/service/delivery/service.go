package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	deliveryRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/delivery"
	"github.com/m04kA/SMC-StoreSlots/internal/integrations/zipzones"
	"github.com/m04kA/SMC-StoreSlots/internal/service/delivery/models"
	"github.com/m04kA/SMC-StoreSlots/pkg/ptr"
)

// Service тарифы доставки и даты блокировки
type Service struct {
	repo         Repository
	zones        ZoneResolver
	timeProvider TimeProvider
	validate     *validator.Validate
	logger       Logger
}

// NewService создает новый экземпляр сервиса доставки
func NewService(repo Repository, zones ZoneResolver, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		repo:         repo,
		zones:        zones,
		timeProvider: timeProvider,
		validate:     validator.New(),
		logger:       logger,
	}
}

// GetDeliveryFee стоимость доставки по ZIP и сумме заказа
// Неизвестная зона - ошибка, тариф никогда не подставляется нулём
func (s *Service) GetDeliveryFee(ctx context.Context, zip string, subtotal decimal.Decimal) (*models.FeeQuote, error) {
	if subtotal.IsNegative() {
		return nil, fmt.Errorf("%w: subtotal must not be negative", ErrInvalidInput)
	}

	zone, err := s.feeZoneForZip(ctx, "GetDeliveryFee", zip)
	if err != nil {
		return nil, err
	}

	fee, isFree := zone.EffectiveFee(subtotal)
	return &models.FeeQuote{
		ZoneKey:             zone.ZoneKey,
		Fee:                 fee,
		FreeDeliveryMinimum: zone.FreeDeliveryMinimum,
		IsFree:              isFree,
	}, nil
}

// ResolveZone проверяет, что по ZIP есть доставка, и возвращает ключ зоны
func (s *Service) ResolveZone(ctx context.Context, zip string) (string, error) {
	zone, err := s.feeZoneForZip(ctx, "ResolveZone", zip)
	if err != nil {
		return "", err
	}
	return zone.ZoneKey, nil
}

func (s *Service) feeZoneForZip(ctx context.Context, op, zip string) (*domain.FeeZone, error) {
	zoneKey, err := s.zones.ZoneFor(zip)
	if err != nil {
		switch {
		case errors.Is(err, zipzones.ErrInvalidZipFormat):
			s.logger.Warn("%s: invalid zip %q", op, zip)
			return nil, fmt.Errorf("%w: %q", ErrInvalidZipFormat, zip)
		case errors.Is(err, zipzones.ErrUnknownZone):
			s.logger.Info("%s: zip %q is outside delivery zones", op, zip)
			return nil, fmt.Errorf("%w: zip %q", ErrUnknownZone, zip)
		default:
			s.logger.Error("%s: failed to resolve zone for zip %q: %v", op, zip, err)
			return nil, fmt.Errorf("%w: %s - resolve zone: %v", ErrInternal, op, err)
		}
	}

	zone, err := s.repo.GetFeeZone(ctx, zoneKey)
	if err != nil {
		if errors.Is(err, deliveryRepo.ErrFeeZoneNotFound) {
			s.logger.Warn("%s: zone %q has no fee configured", op, zoneKey)
			return nil, fmt.Errorf("%w: zone %q", ErrUnknownZone, zoneKey)
		}
		s.logger.Error("%s: failed to get fee zone %q: %v", op, zoneKey, err)
		return nil, fmt.Errorf("%w: %s - get fee zone: %v", ErrInternal, op, err)
	}
	return zone, nil
}

// BlockedDates даты блокировки доставки в диапазоне [from, to]
func (s *Service) BlockedDates(ctx context.Context, from, to time.Time) (map[time.Time]struct{}, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	blockouts, err := s.repo.ListBlockouts(ctx, deliveryRepo.BlockoutFilter{From: &from, To: &to})
	if err != nil {
		s.logger.Error("BlockedDates: failed to list blockouts from=%s to=%s: %v",
			domain.FormatDate(from), domain.FormatDate(to), err)
		return nil, fmt.Errorf("%w: BlockedDates: %v", ErrInternal, err)
	}

	result := make(map[time.Time]struct{}, len(blockouts))
	for _, b := range blockouts {
		result[domain.DateOnly(b.Date)] = struct{}{}
	}
	return result, nil
}

// IsBlocked заблокирована ли доставка на дату
func (s *Service) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	blocked, err := s.BlockedDates(ctx, date, date)
	if err != nil {
		return false, err
	}
	_, ok := blocked[domain.DateOnly(date)]
	return ok, nil
}

// ListBlockouts даты блокировки; прошедшие даты только при includeExpired
func (s *Service) ListBlockouts(ctx context.Context, includeExpired bool) ([]domain.DeliveryBlockout, error) {
	filter := deliveryRepo.BlockoutFilter{}
	if !includeExpired {
		today := domain.DateOnly(s.timeProvider.Now())
		filter.From = &today
	}

	blockouts, err := s.repo.ListBlockouts(ctx, filter)
	if err != nil {
		s.logger.Error("ListBlockouts: %v", err)
		return nil, fmt.Errorf("%w: ListBlockouts: %v", ErrInternal, err)
	}
	return blockouts, nil
}

// CreateBlockout блокирует доставку на дату; повторный вызов обновляет причину
func (s *Service) CreateBlockout(ctx context.Context, req *models.CreateBlockoutRequest) (*domain.DeliveryBlockout, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("CreateBlockout: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	blockout, err := s.repo.UpsertBlockout(ctx, domain.DeliveryBlockout{
		Date:   domain.DateOnly(req.Date),
		Reason: req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlockout: date=%s: %v", domain.FormatDate(req.Date), err)
		return nil, fmt.Errorf("%w: CreateBlockout: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockout: delivery blocked on date=%s reason=%q",
		domain.FormatDate(blockout.Date), ptr.Deref(blockout.Reason, ""))
	return blockout, nil
}

// DeleteBlockout снимает блокировку доставки с даты
func (s *Service) DeleteBlockout(ctx context.Context, date time.Time) error {
	if err := s.repo.DeleteBlockout(ctx, domain.DateOnly(date)); err != nil {
		if errors.Is(err, deliveryRepo.ErrBlockoutNotFound) {
			return ErrBlockoutNotFound
		}
		s.logger.Error("DeleteBlockout: date=%s: %v", domain.FormatDate(date), err)
		return fmt.Errorf("%w: DeleteBlockout: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockout: delivery unblocked on date=%s", domain.FormatDate(date))
	return nil
}

// ListFeeZones все тарифы зон
func (s *Service) ListFeeZones(ctx context.Context) ([]domain.FeeZone, error) {
	zones, err := s.repo.ListFeeZones(ctx)
	if err != nil {
		s.logger.Error("ListFeeZones: %v", err)
		return nil, fmt.Errorf("%w: ListFeeZones: %v", ErrInternal, err)
	}
	return zones, nil
}

// UpsertFeeZone создает или заменяет тариф зоны
func (s *Service) UpsertFeeZone(ctx context.Context, req *models.UpsertFeeZoneRequest) (*domain.FeeZone, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpsertFeeZone: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	zone := domain.FeeZone{
		ZoneKey:             req.ZoneKey,
		Fee:                 req.Fee,
		FreeDeliveryMinimum: req.FreeDeliveryMinimum,
	}
	if err := zone.Validate(); err != nil {
		s.logger.Warn("UpsertFeeZone: validation failed zone=%q: %v", req.ZoneKey, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.repo.UpsertFeeZone(ctx, zone)
	if err != nil {
		s.logger.Error("UpsertFeeZone: zone=%q: %v", req.ZoneKey, err)
		return nil, fmt.Errorf("%w: UpsertFeeZone: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertFeeZone: zone=%q fee=%s freeFrom=%s",
		saved.ZoneKey, saved.Fee.StringFixed(2), saved.FreeDeliveryMinimum.StringFixed(2))
	return saved, nil
}

// DeleteFeeZone удаляет тариф зоны; ZIP этой зоны становятся недоставляемыми
func (s *Service) DeleteFeeZone(ctx context.Context, zoneKey string) error {
	if err := s.repo.DeleteFeeZone(ctx, zoneKey); err != nil {
		if errors.Is(err, deliveryRepo.ErrFeeZoneNotFound) {
			return ErrFeeZoneNotFound
		}
		s.logger.Error("DeleteFeeZone: zone=%q: %v", zoneKey, err)
		return fmt.Errorf("%w: DeleteFeeZone: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteFeeZone: zone=%q removed", zoneKey)
	return nil
}

// describeValidation короткое описание ошибок validator: "field: tag" через запятую
func describeValidation(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
