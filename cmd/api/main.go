package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/gym-leadbot/internal/config"
	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/internal/infra/database"
	"github.com/xavierca1/gym-leadbot/internal/infra/http/handlers"
	"github.com/xavierca1/gym-leadbot/internal/infra/http/middleware"
	"github.com/xavierca1/gym-leadbot/internal/infra/integration/whatsapp"
	"github.com/xavierca1/gym-leadbot/internal/infra/mail"
	"github.com/xavierca1/gym-leadbot/internal/infra/notify"
	"github.com/xavierca1/gym-leadbot/internal/infra/queue"
	"github.com/xavierca1/gym-leadbot/internal/infra/session"
	"github.com/xavierca1/gym-leadbot/internal/infra/worker"
	"github.com/xavierca1/gym-leadbot/internal/usecase"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load content library")
	}
	loc := cfg.Location()

	// 1. Lead store
	var db *sql.DB
	var leads entity.LeadRepositoryInterface
	if cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		if cfg.RunMigrations {
			if err := database.RunMigrations(db); err != nil {
				logger.Fatal().Err(err).Msg("failed to run migrations")
			}
		}
		leads = database.NewLeadRepository(db)
	} else {
		logger.Warn().Msg("⚠️ DATABASE_URL not set, leads are kept in memory")
		leads = database.NewInMemoryLeadRepository()
	}

	// 2. Sessions and dedup fingerprints
	var rdb *redis.Client
	var sessions usecase.SessionStore
	var fingerprints usecase.FingerprintStore
	switch cfg.SessionBackend {
	case "redis":
		rdb, err = session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		fingerprints = session.NewRedisFingerprints(rdb, cfg.SessionTTL)
	default:
		mem := session.NewMemoryStore(cfg.SessionTTL)
		memFingerprints := session.NewMemoryFingerprints(cfg.SessionTTL)
		go session.StartJanitor(ctx, 10*time.Minute, mem, memFingerprints)
		sessions = mem
		fingerprints = memFingerprints
	}

	// 3. Messaging
	if !cfg.GupshupEnabled() {
		logger.Warn().Msg("⚠️ Gupshup credentials missing, outbound messages will fail")
	}
	wa := whatsapp.NewClient(whatsapp.ClientConfig{
		APIKey:       cfg.Gupshup.APIKey,
		AppName:      cfg.Gupshup.AppName,
		SourceNumber: cfg.Gupshup.SourceNumber,
		BaseURL:      cfg.Gupshup.BaseURL,
	})

	// 4. Owner alerts, queued through RabbitMQ when configured
	var emailSender notify.EmailSender
	if cfg.MailEnabled() {
		emailSender = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	}
	ownerNotifier := notify.NewOwnerNotifier(wa, emailSender, cfg.OwnerNumber, cfg.OwnerEmail, content.BusinessName, loc)

	var alerts usecase.OwnerNotifier = ownerNotifier
	var rabbitConn *amqp091.Connection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn

		alerts = queue.NewAlertProducer(rabbitMQ.Ch)
		alertWorker := queue.NewAlertWorker(rabbitMQ.Ch, ownerNotifier)
		go func() {
			if err := alertWorker.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("❌ alert worker exited")
			}
		}()
	}

	// 5. UseCases
	handleMessageUC := usecase.NewHandleMessageUseCase(sessions, leads, alerts, content, loc)
	followUpsUC := usecase.NewSendFollowUpsUseCase(leads, wa, cfg.ReminderTemplateID, cfg.ReviewTemplateID, content.ReviewLink, loc)
	dedup := usecase.NewDedupGuard(fingerprints)
	deliverer := usecase.NewReplyDeliverer(wa, content)

	go worker.NewReminderWorker(followUpsUC).Start(ctx)

	// 6. Handlers
	webhookHandler := handlers.NewWebhookHandler(handleMessageUC, dedup, deliverer)
	chatHandler := handlers.NewChatHandler(handleMessageUC, content)
	leadHandler := handlers.NewLeadHandler(leads)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, rdb, cfg.GupshupEnabled())

	limiter := middleware.NewRateLimiter(cfg.ChatRate, time.Minute)
	go limiter.StartCleanup(ctx.Done(), 10*time.Minute)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/gupshup-webhook", webhookHandler.Handle)
	r.With(limiter.Limit).HandleFunc("/chat", chatHandler.Handle)
	r.Get("/leads/{phone}", leadHandler.HandleGet)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("business", content.BusinessName).Msg("🔥 gym leadbot listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
