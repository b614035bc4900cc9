package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/callflex-webhooks/internal/config"
	"github.com/xavierca1/callflex-webhooks/internal/entity"
	"github.com/xavierca1/callflex-webhooks/internal/infra/database"
	"github.com/xavierca1/callflex-webhooks/internal/infra/http/handlers"
	"github.com/xavierca1/callflex-webhooks/internal/infra/http/routes"
	"github.com/xavierca1/callflex-webhooks/internal/infra/mail"
	"github.com/xavierca1/callflex-webhooks/internal/infra/queue"
	"github.com/xavierca1/callflex-webhooks/internal/infra/supabase"
	"github.com/xavierca1/callflex-webhooks/internal/usecase"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	repo, closeStorage := newClientRepository(cfg, logger)
	defer closeStorage()

	// 2. Broker and welcome worker
	var publisher queue.EventPublisher = queue.NoopPublisher{}
	var broker handlers.BrokerConnection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("rabbitmq unavailable, client events disabled", zap.Error(err))
		} else {
			defer rabbitMQ.Close()
			publisher = queue.NewProducer(rabbitMQ.Ch)
			broker = rabbitMQ.Conn

			if cfg.MailConfigured() {
				sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
				worker := queue.NewWorker(rabbitMQ.Ch, sender, logger.Named("worker"))
				go func() {
					if err := worker.Start(ctx, queue.WelcomeQueue); err != nil {
						logger.Error("welcome worker exited", zap.Error(err))
					}
				}()
			}
		}
	}

	// 3. Use cases
	registerClientUC := usecase.NewRegisterClientUseCase(repo, publisher, logger.Named("typeform"))
	activateSubUC := usecase.NewActivateSubscriptionUseCase(repo, publisher, logger.Named("stripe"))

	if cfg.StripeWebhookSecret == "" {
		logger.Warn("STRIPE_WEBHOOK_SECRET not set, /stripe-webhook will answer 500")
	}

	// 4. Handlers and router
	var storage handlers.Pinger
	if repo != nil {
		storage = repo
	}
	r := routes.NewRouter(routes.Handlers{
		Health:   handlers.NewHealthHandler(storage, broker, cfg.MailConfigured()),
		Typeform: handlers.NewTypeformHandler(registerClientUC, cfg.TypeformWebhookSecret, logger.Named("typeform")),
		Stripe:   handlers.NewStripeHandler(activateSubUC, cfg.StripeWebhookSecret, logger.Named("stripe")),
	}, cfg.CorsAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("webhook server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Bool("storage_connected", repo != nil),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newClientRepository prefers a direct Postgres connection and falls back to
// the Supabase REST API. It returns a nil repository when neither is usable;
// the webhooks then answer 500 instead of the process exiting.
func newClientRepository(cfg *config.Config, logger *zap.Logger) (entity.ClientRepository, func()) {
	noop := func() {}

	if !cfg.StorageConfigured() {
		logger.Error("SUPABASE_URL and SUPABASE_SERVICE_KEY (or DATABASE_URL) must be set, storage disabled")
		return nil, noop
	}

	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err == nil {
			logger.Info("storage: postgres")
			return database.NewClientRepository(db), func() { db.Close() }
		}
		logger.Error("postgres unavailable", zap.Error(err))
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			return nil, noop
		}
	}

	logger.Info("storage: supabase rest", zap.String("url", cfg.SupabaseURL))
	return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey), noop
}
