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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	abandonFlowHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/abandon_flow"
	addParticipantHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/add_participant"
	checkoutActionHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/checkout_action"
	gateCallbackHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/gate_callback"
	getFlowHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/get_flow"
	joinWaitlistHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/join_waitlist"
	loadSlotsHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/load_slots"
	navigateFlowHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/navigate_flow"
	removeParticipantHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/remove_participant"
	resumeFlowHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/resume_flow"
	selectSlotHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/select_slot"
	setGroupModeHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/set_group_mode"
	startFlowHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/start_flow"
	toggleAddonHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/toggle_addon"
	toggleParticipantServiceHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/toggle_participant_service"
	updateDraftHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/update_draft"
	updateParticipantHandler "github.com/m04kA/SMC-BookingFlow/internal/api/handlers/update_participant"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/config"
	continuationStore "github.com/m04kA/SMC-BookingFlow/internal/infra/storage/continuation"
	geocodingClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/geocoding"
	identityGateClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/identitygate"
	platformClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/platform"
	flowService "github.com/m04kA/SMC-BookingFlow/internal/service/flow"
	holdLifecycleUC "github.com/m04kA/SMC-BookingFlow/internal/usecase/hold_lifecycle"
	planAvailabilityUC "github.com/m04kA/SMC-BookingFlow/internal/usecase/plan_availability"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
	"github.com/m04kA/SMC-BookingFlow/pkg/metrics"
)

// continuations хранилище продолжений: запись из hold lifecycle, одноразовое чтение из сервиса сессий
type continuations interface {
	holdLifecycleUC.ContinuationStore
	flowService.ContinuationReader
}

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

	log.Info("Starting SMC-BookingFlow...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	registry := prometheus.NewRegistry()

	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, registry)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище continuation: postgres или redis
	ctx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	var store continuations

	switch cfg.Continuation.Backend {
	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal("Failed to parse redis url: %v", err)
		}
		opts.PoolSize = cfg.Redis.PoolSize

		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", opts.Addr, opts.DB)

		store = continuationStore.NewRedisStore(rdb)

	default:
		// Подключаемся к базе данных
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(config.Seconds(cfg.Database.ConnMaxLifetime))

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			registry.MustRegister(collectors.NewDBStatsCollector(db, cfg.Database.DBName))
		}

		pgStore := continuationStore.NewPostgresStore(db, nil)
		go purgeContinuations(ctx, pgStore, config.Seconds(cfg.Continuation.PurgeInterval), log)
		store = pgStore
	}
	log.Info("Continuation backend: %s (ttl=%ds)", cfg.Continuation.Backend, cfg.Continuation.TTL)

	// Инициализируем интеграционных клиентов
	platform := platformClient.NewClient(
		cfg.Platform.URL,
		config.Seconds(cfg.Platform.Timeout),
		log,
	)
	gate := identityGateClient.NewClient(
		cfg.IdentityGate.URL,
		config.Seconds(cfg.IdentityGate.Timeout),
		log,
	)

	// nil интерфейс отключает геокодинг
	var geocoder flowService.Geocoder
	if cfg.Geocoding.Enabled {
		geocoder = geocodingClient.NewClient(
			cfg.Geocoding.URL,
			config.Seconds(cfg.Geocoding.Timeout),
			log,
		)
	}
	log.Info("Integration clients initialized (Platform=%s timeout=%ds, IdentityGate=%s timeout=%ds, Geocoding enabled=%t)",
		cfg.Platform.URL, cfg.Platform.Timeout, cfg.IdentityGate.URL, cfg.IdentityGate.Timeout, cfg.Geocoding.Enabled)

	// Инициализируем use cases
	planAvailabilityUseCase := planAvailabilityUC.NewUseCase(
		platform,
		rate.NewLimiter(rate.Limit(cfg.Flow.ScanRatePerSecond), cfg.Flow.ScanBurst),
		metricsCollector,
		cfg.Flow.NextAvailableDays,
		log,
	)

	holdLifecycleUseCase := holdLifecycleUC.NewUseCase(
		platform,
		gate,
		store,
		metricsCollector,
		holdLifecycleUC.Options{
			ContinuationTTL:       config.Seconds(cfg.Continuation.TTL),
			ContinuationKeyPrefix: cfg.Continuation.KeyPrefix,
			PublicBaseURL:         cfg.IdentityGate.PublicBaseURL,
		},
		log,
	)

	// Инициализируем сервисы
	flowSvc := flowService.NewService(
		platform,
		geocoder,
		platform,
		planAvailabilityUseCase,
		holdLifecycleUseCase,
		store,
		metricsCollector,
		flowService.Options{
			SessionTTL:            config.Seconds(cfg.Flow.SessionTTL),
			CatalogTTL:            config.Seconds(cfg.Flow.CatalogTTL),
			DefaultCountryCode:    cfg.Flow.DefaultCountryCode,
			ContinuationKeyPrefix: cfg.Continuation.KeyPrefix,
		},
		log,
	)

	// Инициализируем handlers
	startFlow := startFlowHandler.NewHandler(flowSvc, log)
	getFlow := getFlowHandler.NewHandler(flowSvc, log)
	abandonFlow := abandonFlowHandler.NewHandler(flowSvc, log)
	updateDraft := updateDraftHandler.NewHandler(flowSvc, log)
	toggleAddon := toggleAddonHandler.NewHandler(flowSvc, log)
	setGroupMode := setGroupModeHandler.NewHandler(flowSvc, log)
	addParticipant := addParticipantHandler.NewHandler(flowSvc, log)
	updateParticipant := updateParticipantHandler.NewHandler(flowSvc, log)
	removeParticipant := removeParticipantHandler.NewHandler(flowSvc, log)
	toggleParticipantService := toggleParticipantServiceHandler.NewHandler(flowSvc, log)
	stepNext := navigateFlowHandler.NewHandler(flowSvc, navigateFlowHandler.DirectionNext, log)
	stepBack := navigateFlowHandler.NewHandler(flowSvc, navigateFlowHandler.DirectionBack, log)
	stepReview := navigateFlowHandler.NewHandler(flowSvc, navigateFlowHandler.DirectionReview, log)
	refreshSlots := loadSlotsHandler.NewHandler(flowSvc, loadSlotsHandler.ModeRefresh, log)
	nextAvailable := loadSlotsHandler.NewHandler(flowSvc, loadSlotsHandler.ModeNextAvailable, log)
	selectSlot := selectSlotHandler.NewHandler(flowSvc, log)
	confirm := checkoutActionHandler.NewHandler(flowSvc, checkoutActionHandler.ActionConfirm, log)
	retryGate := checkoutActionHandler.NewHandler(flowSvc, checkoutActionHandler.ActionRetryGate, log)
	finalize := checkoutActionHandler.NewHandler(flowSvc, checkoutActionHandler.ActionFinalize, log)
	gateCallback := gateCallbackHandler.NewHandler(flowSvc, cfg.IdentityGate.CallbackSecret, log)
	resumeFlow := resumeFlowHandler.NewHandler(flowSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(flowSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Сессия записи ---
	api.HandleFunc("/providers/{providerId}/flows", startFlow.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}", getFlow.Handle).Methods(http.MethodGet)
	api.HandleFunc("/flows/{flowId}", abandonFlow.Handle).Methods(http.MethodDelete)

	// --- Черновик ---
	api.HandleFunc("/flows/{flowId}/draft", updateDraft.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/flows/{flowId}/addons/{addonId}/toggle", toggleAddon.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/group", setGroupMode.Handle).Methods(http.MethodPut)

	// --- Участники группы ---
	api.HandleFunc("/flows/{flowId}/participants", addParticipant.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/participants/{participantId}", updateParticipant.Handle).Methods(http.MethodPut)
	api.HandleFunc("/flows/{flowId}/participants/{participantId}", removeParticipant.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/flows/{flowId}/participants/{participantId}/services/{offeringId}/toggle",
		toggleParticipantService.Handle).Methods(http.MethodPost)

	// --- Шаги ---
	api.HandleFunc("/flows/{flowId}/steps/next", stepNext.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/steps/back", stepBack.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/steps/review", stepReview.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	api.HandleFunc("/flows/{flowId}/slots/refresh", refreshSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/slots/next-available", nextAvailable.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/slot", selectSlot.Handle).Methods(http.MethodPut)

	// --- Бронь и identity gate ---
	api.HandleFunc("/flows/{flowId}/confirm", confirm.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/gate/callback", gateCallback.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/gate/retry", retryGate.Handle).Methods(http.MethodPost)
	api.HandleFunc("/flows/{flowId}/finalize", finalize.Handle).Methods(http.MethodPost)
	api.HandleFunc("/continuations/{holdId}", resumeFlow.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	api.HandleFunc("/flows/{flowId}/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
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

	// Останавливаем фоновую очистку continuation
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		config.Seconds(cfg.Server.ShutdownTimeout),
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// purgeContinuations периодически удаляет истекшие continuation из postgres.
// Redis удаляет их сам по TTL.
func purgeContinuations(ctx context.Context, store *continuationStore.PostgresStore, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Warn("purgeContinuations: failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Info("purgeContinuations: removed %d expired continuations", removed)
			}
		}
	}
}
