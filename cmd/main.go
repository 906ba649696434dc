package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	deliveryBlockoutsHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/delivery_blockouts"
	feeZonesHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/fee_zones"
	getAvailableDatesHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/get_available_dates"
	getDeliveryFeeHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/get_delivery_fee"
	getSlotsHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/get_slots"
	releaseSlotHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/release_slot"
	reserveSlotHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/reserve_slot"
	slotCapacityHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/slot_capacity"
	storeSettingsHandler "github.com/m04kA/SMC-StoreSlots/internal/api/handlers/store_settings"
	"github.com/m04kA/SMC-StoreSlots/internal/api/middleware"
	"github.com/m04kA/SMC-StoreSlots/internal/config"
	"github.com/m04kA/SMC-StoreSlots/internal/infra/cache/slotgrid"
	capacityRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/capacity"
	deliveryRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/delivery"
	storeSettingsRepo "github.com/m04kA/SMC-StoreSlots/internal/infra/storage/storesettings"
	"github.com/m04kA/SMC-StoreSlots/internal/integrations/orderlog"
	"github.com/m04kA/SMC-StoreSlots/internal/integrations/zipzones"
	capacityService "github.com/m04kA/SMC-StoreSlots/internal/service/capacity"
	deliveryService "github.com/m04kA/SMC-StoreSlots/internal/service/delivery"
	gateService "github.com/m04kA/SMC-StoreSlots/internal/service/gate"
	scheduleService "github.com/m04kA/SMC-StoreSlots/internal/service/schedule"
	slotsService "github.com/m04kA/SMC-StoreSlots/internal/service/slots"
	getAvailableDatesUC "github.com/m04kA/SMC-StoreSlots/internal/usecase/get_available_dates"
	validateAndReserveUC "github.com/m04kA/SMC-StoreSlots/internal/usecase/validate_and_reserve"
	"github.com/m04kA/SMC-StoreSlots/migrations"
	"github.com/m04kA/SMC-StoreSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StoreSlots/pkg/logger"
	"github.com/m04kA/SMC-StoreSlots/pkg/metrics"
	"github.com/m04kA/SMC-StoreSlots/pkg/migrator"
	"github.com/m04kA/SMC-StoreSlots/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StoreSlots...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); nil *Metrics ничего не пишет
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrator.Up(db, migrations.FS, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш сеток слотов (если включен)
	var (
		gridCache       slotsService.GridCache
		gridInvalidator scheduleService.GridInvalidator
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			// Без Redis сервис работает, слоты считаются напрямую из БД
			log.Warn("Redis is unavailable at %s, slot grid cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache := slotgrid.New(redisClient, time.Duration(cfg.Redis.SlotGridTTLSecs)*time.Second)
			gridCache = cache
			gridInvalidator = cache
			log.Info("Slot grid cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotGridTTLSecs)
		}
	}

	// Справочник ZIP -> зона доставки
	var zones *zipzones.Resolver
	if cfg.Delivery.ZipZonesFile != "" {
		zones, err = zipzones.LoadFile(cfg.Delivery.ZipZonesFile)
	} else {
		zones, err = zipzones.LoadDefault()
	}
	if err != nil {
		log.Fatal("Failed to load zip zones: %v", err)
	}

	// Журнал заказов (если включен)
	var orderLog validateAndReserveUC.OrderLog
	if cfg.OrderLog.Enabled {
		orderLogClient := orderlog.NewClient(cfg.OrderLog.File, cfg.OrderLog.Sheet)
		defer orderLogClient.Close()
		orderLog = orderLogClient
		log.Info("Order log enabled (file=%s, sheet=%s)", cfg.OrderLog.File, cfg.OrderLog.Sheet)
	}

	// Инициализируем репозитории
	settingsRepository := storeSettingsRepo.NewRepository(wrappedDB)
	capacityRepository := capacityRepo.NewRepository(wrappedDB)
	deliveryRepository := deliveryRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(settingsRepository, txMgr, gridInvalidator, log)
	slotsSvc := slotsService.NewService(settingsRepository, capacityRepository, txMgr, gridCache, metricsCollector, log)
	capacitySvc := capacityService.NewService(capacityRepository, metricsCollector, log)
	deliverySvc := deliveryService.NewService(deliveryRepository, zones, &deliveryService.RealTimeProvider{}, log)
	gateSvc := gateService.NewService(slotsSvc, &gateService.RealTimeProvider{}, cfg.Scheduling.MinLeadMinutes, log)

	// Инициализируем use cases
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		scheduleSvc,
		slotsSvc,
		deliverySvc,
		getAvailableDatesUC.HorizonConfig{
			DefaultDays: cfg.Scheduling.DefaultHorizonDays,
			MaxDays:     cfg.Scheduling.MaxHorizonDays,
		},
		cfg.Scheduling.MinLeadMinutes,
		log,
	)

	validateAndReserveUseCase := validateAndReserveUC.NewUseCase(
		scheduleSvc,
		gateSvc,
		capacitySvc,
		deliverySvc,
		orderLog,
		log,
	)

	// Инициализируем handlers
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getSlots := getSlotsHandler.NewHandler(slotsSvc, log)
	reserveSlot := reserveSlotHandler.NewHandler(validateAndReserveUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(capacitySvc, log)
	getDeliveryFee := getDeliveryFeeHandler.NewHandler(deliverySvc, log)
	storeSettings := storeSettingsHandler.NewHandler(scheduleSvc, log)
	slotCapacity := slotCapacityHandler.NewHandler(capacitySvc, log)
	deliveryBlockouts := deliveryBlockoutsHandler.NewHandler(deliverySvc, log)
	feeZones := feeZonesHandler.NewHandler(deliverySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (витрина и оформление заказа)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		go limiter.RunCleanup(time.Minute, stopCh)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Даты, на которые можно выбрать слот
	public.HandleFunc("/stores/{storeId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// Слоты магазина на дату
	public.HandleFunc("/stores/{storeId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// Проверка и резервирование слота при оформлении заказа
	public.HandleFunc("/stores/{storeId}/reservations", reserveSlot.Handle).Methods(http.MethodPost)

	// Освобождение места при отмене заказа
	public.HandleFunc("/stores/{storeId}/reservations/release", releaseSlot.Handle).Methods(http.MethodPost)

	// Стоимость доставки по ZIP
	public.HandleFunc("/delivery/fee", getDeliveryFee.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.AdminOnly(cfg.Admin))

	// --- Настройки магазина ---
	admin.HandleFunc("/stores/{storeId}/settings", storeSettings.Get).Methods(http.MethodGet)
	admin.HandleFunc("/stores/{storeId}/schedule", storeSettings.UpdateSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/stores/{storeId}/holidays", storeSettings.UpdateHolidays).Methods(http.MethodPut)
	admin.HandleFunc("/stores/{storeId}/special-hours", storeSettings.UpdateSpecialHours).Methods(http.MethodPut)
	admin.HandleFunc("/stores/{storeId}/pickup", storeSettings.SetPickupEnabled).Methods(http.MethodPut)

	// Загрузка слота
	admin.HandleFunc("/stores/{storeId}/capacity", slotCapacity.Handle).Methods(http.MethodGet)

	// --- Доставка ---
	admin.HandleFunc("/delivery/blockouts", deliveryBlockouts.List).Methods(http.MethodGet)
	admin.HandleFunc("/delivery/blockouts", deliveryBlockouts.Create).Methods(http.MethodPost)
	admin.HandleFunc("/delivery/blockouts/{date}", deliveryBlockouts.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/delivery/fee-zones", feeZones.List).Methods(http.MethodGet)
	admin.HandleFunc("/delivery/fee-zones/{zoneKey}", feeZones.Upsert).Methods(http.MethodPut)
	admin.HandleFunc("/delivery/fee-zones/{zoneKey}", feeZones.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (статистика пула, очистка rate limiter)
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
