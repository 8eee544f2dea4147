// Command server runs the insurance sales-funnel API: premium rating, quote
// lifecycle, simulated payment collection, and the agent dashboard.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bima/internal/audit"
	"bima/internal/auth"
	"bima/internal/dashboard"
	httpapi "bima/internal/http"
	"bima/internal/kv"
	"bima/internal/payment"
	"bima/internal/platform/config"
	"bima/internal/platform/httpserver"
	"bima/internal/platform/logger"
	"bima/internal/platform/metrics"
	"bima/internal/platform/postgres"
	"bima/internal/platform/redis"
	quotehandler "bima/internal/quote/handler"
	quoteservice "bima/internal/quote/service"
	quotestore "bima/internal/quote/store"
	"bima/internal/rating"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()
	healthChecks := map[string]httpapi.HealthCheck{}

	// Blob storage: Postgres wins when both are configured, then Redis, then
	// in-process memory for development runs.
	var blobs kv.Store = kv.NewMemory()
	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		pgStore := kv.NewPostgres(db)
		if err := pgStore.Migrate(context.Background()); err != nil {
			log.Error("postgres migration failed", "error", err)
			os.Exit(1)
		}
		blobs = pgStore
		healthChecks["postgres"] = db.PingContext
		log.Info("quote storage: postgres")
	} else {
		rdb, err := redis.New(cfg.Redis)
		if err != nil {
			log.Error("redis unavailable", "error", err)
			os.Exit(1)
		}
		if rdb != nil {
			defer rdb.Close()
			blobs = kv.NewRedis(rdb.Client)
			healthChecks["redis"] = rdb.Health
			log.Info("quote storage: redis")
		} else {
			log.Info("quote storage: in-memory")
		}
	}

	// Audit trail: always the in-memory log, fanned out to Kafka when brokers
	// are configured.
	trail := audit.NewMemoryStore()
	var sink audit.Sink = trail
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(context.Background(), cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = audit.Fanout{trail, kafkaSink}
		log.Info("audit events forwarded to kafka", "topic", cfg.Kafka.Topic)
	}
	publisher := audit.NewPublisher(sink, audit.WithAsyncBuffer(256), audit.WithLogger(log))
	defer publisher.Close()

	creds := auth.NewCredentials()
	if err := seedAgents(creds, cfg.AgentPassword); err != nil {
		log.Error("failed to seed agent accounts", "error", err)
		os.Exit(1)
	}
	tokens := auth.NewJWTService(cfg.JWTSigningKey, "bima", 12*time.Hour)
	authService := auth.NewService(creds, tokens, 12*time.Hour,
		auth.WithAuditPublisher(publisher),
		auth.WithLogger(log),
	)

	quotes := quoteservice.New(
		quotestore.NewKV(blobs, log),
		rating.NewCalculator(rating.Default(), cfg.USDToKES),
		quoteservice.WithAuditPublisher(publisher),
		quoteservice.WithMetrics(m),
		quoteservice.WithValidity(config.QuoteValidityWindow),
		quoteservice.WithStrictActivation(cfg.StrictActivation),
		quoteservice.WithLogger(log),
	)
	payments := payment.NewService(
		payment.NewSimulator(cfg.Payment.Delay),
		quotes,
		payment.WithAuditPublisher(publisher),
		payment.WithMetrics(m),
		payment.WithLogger(log),
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:       log,
		Metrics:      m,
		Tokens:       tokens,
		Auth:         auth.NewHandler(authService, log),
		Quotes:       quotehandler.New(quotes, payments, log),
		Dashboard:    dashboard.NewHandler(dashboard.NewService(quotes), log),
		HealthChecks: healthChecks,
	})

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// seedAgents registers the demo sales agents. There is no self-service
// registration in the funnel.
func seedAgents(creds *auth.Credentials, password string) error {
	agents := []auth.User{
		{ID: "agent-1", Username: "wanjiku", Name: "Wanjiku Kamau"},
		{ID: "agent-2", Username: "otieno", Name: "Otieno Odhiambo"},
	}
	for _, agent := range agents {
		if err := creds.Add(agent, password); err != nil {
			return err
		}
	}
	return nil
}
