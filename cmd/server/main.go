package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"estategate/internal/gate/blacklist"
	"estategate/internal/gate/handler"
	gatemetrics "estategate/internal/gate/metrics"
	"estategate/internal/gate/service"
	"estategate/internal/gate/store"
	"estategate/internal/platform/config"
	"estategate/internal/platform/httpserver"
	"estategate/internal/platform/kafka"
	"estategate/internal/platform/logger"
	"estategate/internal/platform/metrics"
	"estategate/internal/platform/middleware"
	"estategate/internal/platform/ratelimit"
	redisclient "estategate/internal/platform/redis"
	"estategate/internal/platform/telemetry"
	"estategate/pkg/platform/audit/buffer"
	"estategate/pkg/platform/audit/publisher"
	auditmemory "estategate/pkg/platform/audit/store/memory"
	"estategate/pkg/platform/audit/worker"
	"estategate/pkg/platform/httputil"
	"estategate/pkg/platform/middleware/admin"
	"estategate/pkg/platform/middleware/metadata"
	"estategate/pkg/platform/middleware/request"
	"estategate/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("estategate exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("estategate stopped")
}

type infra struct {
	blacklist blacklist.Registry
	redis     *redisclient.Client
	producer  *kafka.Producer
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	clientIP, err := metadata.NewResolver(cfg.Gate.TrustedProxies)
	if err != nil {
		return err
	}

	shutdownTracing := telemetry.Setup(ctx, cfg.Telemetry, log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps, err := buildInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close(log)

	auditMetrics := worker.NewMetrics(reg)
	var (
		auditPublisher *publisher.Publisher
		exportWorker   *worker.Worker
	)
	if deps.producer != nil {
		buf := buffer.NewRingBuffer(cfg.Audit.BufferSize)
		auditPublisher = publisher.NewPublisher(deps.producer, publisher.WithAsyncBuffer(buf), publisher.WithLogger(log))
		exportWorker = worker.New(buf, deps.producer,
			worker.WithBatchSize(cfg.Audit.BatchSize),
			worker.WithFlushInterval(cfg.Audit.FlushInterval),
			worker.WithCircuitBreaker(worker.NewCircuitBreaker(5, 30*time.Second)),
			worker.WithLogger(log),
			worker.WithMetrics(auditMetrics),
		)
	} else {
		auditPublisher = publisher.NewPublisher(auditmemory.NewInMemoryStore(), publisher.WithLogger(log))
	}

	gateService := service.New(deps.blacklist, store.NewInMemory(),
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(gatemetrics.New(reg)),
		service.WithLatency(cfg.Gate.SimulatedLatency),
		service.WithDefaultLocation(cfg.Gate.DefaultLocation),
	)
	verifyLimiter := ratelimit.NewMiddleware(
		ratelimit.NewSlidingWindow(cfg.Gate.VerifyRateLimit, cfg.Gate.VerifyRateWindow),
		log,
		ratelimit.NewMetrics(reg),
	)
	gateHandler := handler.New(gateService, log, handler.WithVerifyMiddleware(verifyLimiter.PerClientIP))

	r := chi.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(clientIP.Middleware)
	r.Use(middleware.AccessLog(log))
	r.Use(metrics.NewHTTP(reg).Middleware)

	r.Get("/healthz", deps.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	gateHandler.Register(r)
	r.Group(func(ar chi.Router) {
		ar.Use(admin.RequireAdminToken(cfg.AdminToken, log))
		gateHandler.RegisterAdmin(ar)
	})

	srv := httpserver.New(cfg.Addr, otelhttp.NewHandler(r, "estategate"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting estategate",
			"addr", cfg.Addr,
			"env", cfg.Environment,
			"redis_blacklist", deps.redis != nil,
			"kafka_audit", deps.producer != nil,
			"blacklist_codes", len(cfg.Gate.BlacklistCodes),
			"trusted_proxies", len(cfg.Gate.TrustedProxies),
		)
		return httpserver.Run(gctx, srv)
	})
	if exportWorker != nil {
		g.Go(func() error {
			return exportWorker.Run(gctx)
		})
	}
	return g.Wait()
}

// buildInfra picks the blacklist backend and the audit sink. Redis and Kafka
// are optional; without them the gate runs fully in process.
func buildInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	deps := &infra{}

	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		registry := blacklist.NewRedisRegistry(rc.Client, blacklist.WithKey(cfg.Redis.Key))
		if err := registry.Seed(ctx, cfg.Gate.BlacklistCodes); err != nil {
			_ = rc.Close()
			return nil, err
		}
		deps.redis = rc
		deps.blacklist = registry
	} else {
		deps.blacklist = blacklist.NewStatic(cfg.Gate.BlacklistCodes)
	}

	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka, kafka.WithLogger(log))
		if err != nil {
			deps.close(log)
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := producer.Ping(pingCtx); err != nil {
			log.WarnContext(ctx, "kafka not reachable yet, audit export will retry", "error", err)
		}
		deps.producer = producer
	}
	return deps, nil
}

func (d *infra) healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK
	if d.redis != nil {
		if err := d.redis.Health(r.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	httputil.WriteJSON(w, code, status)
}

func (d *infra) close(log *slog.Logger) {
	if d.producer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		d.producer.Close(ctx)
		cancel()
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Warn("redis close failed", "error", err)
		}
	}
}
