package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bloodhound/internal/audit"
	"bloodhound/internal/auth"
	authhandler "bloodhound/internal/auth/handler"
	authmetrics "bloodhound/internal/auth/metrics"
	authstore "bloodhound/internal/auth/store"
	"bloodhound/internal/enrichment"
	enrichstore "bloodhound/internal/enrichment/store"
	"bloodhound/internal/jwttoken"
	"bloodhound/internal/platform/config"
	"bloodhound/internal/platform/httpserver"
	"bloodhound/internal/platform/logger"
	"bloodhound/internal/platform/middleware"
	platformredis "bloodhound/internal/platform/redis"
	"bloodhound/internal/registry"
	regmetrics "bloodhound/internal/registry/metrics"
	"bloodhound/internal/vendors"
	vendorhandler "bloodhound/internal/vendors/handler"
	vendormetrics "bloodhound/internal/vendors/metrics"
	vendorstore "bloodhound/internal/vendors/store"
	"bloodhound/pkg/platform/httputil"
)

const auditInboxBuffer = 256

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres backs the vendor and audit stores when configured; otherwise
	// everything runs in memory.
	var db *sql.DB
	if cfg.Postgres.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("postgres ping failed", "error", err)
			os.Exit(1)
		}
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit trail: durable store drained by a background worker, with an
	// optional Kafka sink for downstream consumers.
	var auditBacking audit.Store = audit.NewInMemoryStore()
	if db != nil {
		auditBacking = audit.NewPostgresStore(db)
	}
	auditChannel, auditInbox := audit.NewChannelStore(auditBacking, auditInboxBuffer)
	auditWorker := audit.NewWorker(auditBacking, auditInbox)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	publisherOpts := []audit.PublisherOption{audit.WithLogger(log)}
	var kafkaSink *audit.KafkaSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err = audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka sink init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		publisherOpts = append(publisherOpts, audit.WithSink(kafkaSink))
	}
	auditor := audit.NewPublisher(auditChannel, publisherOpts...)

	// Enrichment: registry connectors fan out per evaluation; snapshots are
	// cached in Redis when available.
	var snapshotCache enrichment.SnapshotCache
	if redisClient != nil {
		snapshotCache = enrichstore.NewRedisCache(redisClient.Client, config.SnapshotCacheTTL)
	} else {
		snapshotCache = enrichstore.NewInMemoryCache(config.SnapshotCacheTTL)
	}

	gstn, mca, ibbi, udyam := buildConnectors(cfg.Registries)
	enricher := enrichment.NewService(gstn, mca, ibbi, udyam,
		enrichment.WithCache(snapshotCache),
		enrichment.WithLogger(log),
		enrichment.WithMetrics(regmetrics.New()),
		enrichment.WithTimeouts(enrichment.Timeouts{
			GSTN:  cfg.Registries.GSTNTimeout,
			MCA:   cfg.Registries.MCATimeout,
			IBBI:  cfg.Registries.IBBITimeout,
			Udyam: cfg.Registries.UdyamTimeout,
		}),
	)

	var vendors vendor.Store = vendorstore.NewInMemoryStore()
	if db != nil {
		vendors = vendorstore.NewPostgresStore(db)
	}
	vendorService := vendor.NewService(enricher, vendors, auditor, log, vendormetrics.New())

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, "bloodhound", "bloodhound-api")
	authService := auth.NewService(authstore.NewInMemoryStore(), tokens, auditor, log,
		auth.WithMetrics(authmetrics.New()),
	)

	router := buildRouter(log, tokens, authService, vendorService)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting bloodhound", "addr", cfg.Addr, "mock_registries", cfg.Registries.MockMode)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildConnectors returns one client per registry, mock or HTTP depending on
// configuration.
func buildConnectors(cfg config.RegistryConfig) (registry.GSTNClient, registry.MCAClient, registry.IBBIClient, registry.UdyamClient) {
	if cfg.MockMode {
		return registry.MockGSTNClient{}, registry.MockMCAClient{}, registry.MockIBBIClient{}, registry.MockUdyamClient{}
	}
	return registry.NewHTTPGSTNClient(cfg.GSTNBaseURL, cfg.GSTNTimeout),
		registry.NewHTTPMCAClient(cfg.MCABaseURL, cfg.MCATimeout),
		registry.NewHTTPIBBIClient(cfg.IBBIBaseURL, cfg.IBBITimeout),
		registry.NewHTTPUdyamClient(cfg.UdyamBaseURL, cfg.UdyamTimeout)
}

func buildRouter(log *slog.Logger, tokens *jwttoken.JWTService, authService *auth.Service, vendorService *vendor.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	authhandler.New(authService, log).Register(r)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(&claimsAdapter{tokens: tokens}, log))
		vendorhandler.New(vendorService, log).Register(protected)
	})

	return r
}

// claimsAdapter narrows jwttoken claims to what the auth middleware needs.
type claimsAdapter struct {
	tokens *jwttoken.JWTService
}

func (a *claimsAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{
		UserID:   claims.UserID,
		EntityID: claims.EntityID,
		Role:     claims.Role,
	}, nil
}
