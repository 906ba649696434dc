package storesettings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StoreSlots/internal/domain"
	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StoreSlots/pkg/psqlbuilder"
)

const (
	tableSettings     = "store_settings"
	tableDaySchedules = "store_day_schedules"
	tableHolidays     = "store_holidays"
	tableSpecialHours = "store_special_hours"
)

// Repository репозиторий настроек магазина: недельное расписание, праздники, особые часы
// Методы замены коллекций (Replace*) рассчитаны на вызов внутри транзакции
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек магазина
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки магазина целиком
// Данные проходят доменную валидацию: битые записи дают ErrCorruptRecord
func (r *Repository) Get(ctx context.Context, storeID int64) (*domain.StoreSettings, error) {
	settings, err := r.getSettingsRow(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if settings.WeeklySchedule, err = r.getWeeklySchedule(ctx, storeID); err != nil {
		return nil, err
	}
	if settings.HolidayDates, err = r.GetHolidayDates(ctx, storeID); err != nil {
		return nil, err
	}
	if settings.SpecialHours, err = r.GetSpecialHours(ctx, storeID); err != nil {
		return nil, err
	}

	if len(settings.WeeklySchedule) > 0 {
		if err := settings.WeeklySchedule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: Get - store=%d weekly schedule: %v", ErrCorruptRecord, storeID, err)
		}
	}
	if err := domain.ValidateSpecialHours(settings.SpecialHours); err != nil {
		return nil, fmt.Errorf("%w: Get - store=%d special hours: %v", ErrCorruptRecord, storeID, err)
	}

	return settings, nil
}

func (r *Repository) getSettingsRow(ctx context.Context, storeID int64) (*domain.StoreSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"store_id",
		"is_pickup_enabled",
		"created_at",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"store_id": storeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.StoreSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.StoreID,
		&settings.IsPickupEnabled,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time
	return &settings, nil
}

func (r *Repository) getWeeklySchedule(ctx context.Context, storeID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"slot_increment_minutes",
		"max_orders_per_slot",
	).
		From(tableDaySchedules).
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make(domain.WeeklySchedule, 0, 7)
	for rows.Next() {
		var day domain.DaySchedule
		var dayOfWeek int

		if err := rows.Scan(
			&dayOfWeek,
			&day.IsOpen,
			&day.OpenTime,
			&day.CloseTime,
			&day.SlotDurationMinutes,
			&day.SlotIncrementMinutes,
			&day.MaxOrdersPerSlot,
		); err != nil {
			return nil, fmt.Errorf("%w: getWeeklySchedule - scan row: %v", ErrScanRow, err)
		}

		day.DayOfWeek = time.Weekday(dayOfWeek)
		week = append(week, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}

// GetHolidayDates получает праздничные даты магазина по возрастанию
func (r *Repository) GetHolidayDates(ctx context.Context, storeID int64) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("holiday_date").
		From(tableHolidays).
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("holiday_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidayDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHolidayDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: GetHolidayDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, domain.DateOnly(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHolidayDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// GetSpecialHours получает переопределения часов работы по возрастанию даты
func (r *Repository) GetSpecialHours(ctx context.Context, storeID int64) ([]domain.SpecialHoursOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"override_date",
		"is_open",
		"open_time",
		"close_time",
	).
		From(tableSpecialHours).
		Where(squirrel.Eq{"store_id": storeID}).
		OrderBy("override_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.SpecialHoursOverride, 0)
	for rows.Next() {
		var o domain.SpecialHoursOverride
		if err := rows.Scan(&o.Date, &o.IsOpen, &o.OpenTime, &o.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetSpecialHours - scan row: %v", ErrScanRow, err)
		}
		o.Date = domain.DateOnly(o.Date)
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSpecialHours - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// EnsureSettings создает строку настроек магазина, если её ещё нет
func (r *Repository) EnsureSettings(ctx context.Context, storeID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns("store_id", "is_pickup_enabled").
		Values(storeID, true).
		Suffix("ON CONFLICT (store_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: EnsureSettings - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureSettings - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// Touch обновляет updated_at; ErrSettingsNotFound, если магазина нет
func (r *Repository) Touch(ctx context.Context, storeID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSettings).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"store_id": storeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Touch - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Touch", query, args)
}

// SetPickupEnabled включает или выключает самовывоз
func (r *Repository) SetPickupEnabled(ctx context.Context, storeID int64, enabled bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSettings).
		Set("is_pickup_enabled", enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"store_id": storeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPickupEnabled - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetPickupEnabled", query, args)
}

// ReplaceWeeklySchedule полностью заменяет недельное расписание
func (r *Repository) ReplaceWeeklySchedule(ctx context.Context, storeID int64, week domain.WeeklySchedule) error {
	if err := r.deleteByStore(ctx, tableDaySchedules, storeID, "ReplaceWeeklySchedule"); err != nil {
		return err
	}
	if len(week) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(tableDaySchedules).Columns(
		"store_id",
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
		"slot_duration_minutes",
		"slot_increment_minutes",
		"max_orders_per_slot",
	)
	for _, day := range week.Sorted() {
		insert = insert.Values(
			storeID,
			int(day.DayOfWeek),
			day.IsOpen,
			day.OpenTime,
			day.CloseTime,
			day.SlotDurationMinutes,
			day.SlotIncrementMinutes,
			day.MaxOrdersPerSlot,
		)
	}

	return r.execInsert(ctx, insert, "ReplaceWeeklySchedule")
}

// ReplaceHolidayDates полностью заменяет список праздников
func (r *Repository) ReplaceHolidayDates(ctx context.Context, storeID int64, dates []time.Time) error {
	if err := r.deleteByStore(ctx, tableHolidays, storeID, "ReplaceHolidayDates"); err != nil {
		return err
	}
	if len(dates) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(tableHolidays).Columns("store_id", "holiday_date")
	for _, d := range dates {
		insert = insert.Values(storeID, domain.FormatDate(d))
	}

	return r.execInsert(ctx, insert, "ReplaceHolidayDates")
}

// ReplaceSpecialHours полностью заменяет список особых часов
func (r *Repository) ReplaceSpecialHours(ctx context.Context, storeID int64, overrides []domain.SpecialHoursOverride) error {
	if err := r.deleteByStore(ctx, tableSpecialHours, storeID, "ReplaceSpecialHours"); err != nil {
		return err
	}
	if len(overrides) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(tableSpecialHours).Columns(
		"store_id",
		"override_date",
		"is_open",
		"open_time",
		"close_time",
	)
	for _, o := range overrides {
		insert = insert.Values(storeID, domain.FormatDate(o.Date), o.IsOpen, o.OpenTime, o.CloseTime)
	}

	return r.execInsert(ctx, insert, "ReplaceSpecialHours")
}

// Helper methods

func (r *Repository) deleteByStore(ctx context.Context, table string, storeID int64, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"store_id": storeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}
	return nil
}

func (r *Repository) execInsert(ctx context.Context, insert squirrel.InsertBuilder, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build insert query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute insert: %v", ErrExecQuery, op, err)
	}
	return nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}
	return nil
}
