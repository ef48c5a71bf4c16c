// cmd/worker-manager/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"roi-assessment-workers/internal/common/benchmarks"
	"roi-assessment-workers/internal/common/camunda"
	"roi-assessment-workers/internal/common/config"
	"roi-assessment-workers/internal/common/database"
	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/internal/common/observability"

	cra "roi-assessment-workers/internal/workers/assessment/calculate-roi-assessment"
	raf "roi-assessment-workers/internal/workers/assessment/route-assessment-followup"
	vai "roi-assessment-workers/internal/workers/assessment/validate-assessment-input"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// fatal logs, flushes the logger and exits. Deferred cleanup does not run.
func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err})
	_ = log.Sync()
	os.Exit(1)
}

// workerTimeout is the job timeout from the worker's config section.
func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("starting worker manager", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx := context.Background()
	obs := observability.New(cfg.App.Name, log)

	// --- Benchmark sources (both optional) ---
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(ctx, cfg.Database.Postgres)
			return err
		}, 15, 2*time.Second, log, "PostgreSQL connection")
		if err != nil {
			fatal(log, "postgres failed after retries", err)
		}
		defer pg.Close()
		log.Info("PostgreSQL connected", nil)
	}

	var rc *database.RedisClient
	if cfg.Database.Redis.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(ctx, cfg.Database.Redis)
			return err
		}, 5, 2*time.Second, log, "Redis connection")
		if err != nil {
			log.Warn("redis unavailable, benchmark snapshot sharing disabled", map[string]interface{}{"error": err})
			rc = nil
		} else {
			defer rc.Close()
			log.Info("Redis connected", nil)
		}
	}

	var cache redis.Cmdable
	if rc != nil {
		cache = rc.Client
	}
	var db *sql.DB
	if pg != nil {
		db = pg.DB
	}

	loader := benchmarks.NewLoader(cfg.Benchmarks, db, cache, log)
	store := benchmarks.NewStore(loader, cfg.Benchmarks.BenchmarkCacheTTL(), log)
	if _, err := store.Registry(ctx); err != nil {
		// Jobs will fail with BENCHMARK_LOAD_FAILED and be retried until a load succeeds.
		log.Warn("initial benchmark load failed", map[string]interface{}{"error": err})
	}

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		fatal(log, "zeebe client failed", err)
	}
	log.Info("Zeebe client connected", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	// --- Workers ---
	var workers []worker.JobWorker
	start := func(taskType string, handler camunda.JobHandler) {
		if w := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log); w != nil {
			workers = append(workers, w)
		}
	}

	if config.IsWorkerEnabled(cfg, vai.TaskType) {
		vcfg := vai.LoadConfig()
		vcfg.Timeout = workerTimeout(cfg, vai.TaskType)
		vcfg.DefaultBenchmarkProfile = cfg.Benchmarks.DefaultProfile
		start(vai.TaskType, vai.NewHandler(vcfg, log))
	}

	if config.IsWorkerEnabled(cfg, cra.TaskType) {
		ccfg := cra.LoadConfig()
		ccfg.Timeout = workerTimeout(cfg, cra.TaskType)
		start(cra.TaskType, cra.NewHandler(ccfg, store, obs, log))
	}

	if config.IsWorkerEnabled(cfg, raf.TaskType) {
		rcfg := raf.LoadConfig()
		rcfg.Timeout = workerTimeout(cfg, raf.TaskType)
		start(raf.TaskType, raf.NewHandler(rcfg, log))
	}

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           healthMux(zeebe, store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping workers", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error stopping health server", map[string]interface{}{"error": err})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("error closing Zeebe client", map[string]interface{}{"error": err})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("error shutting down meter provider", map[string]interface{}{"error": err})
	}

	log.Info("worker manager stopped", nil)
}

func healthMux(zeebe interface{ HealthCheck(context.Context) error }, store *benchmarks.Store) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		reg, err := store.Registry(r.Context())
		if err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{
			"status":           "ready",
			"benchmarkSource":  reg.Source(),
			"benchmarkDefault": reg.DefaultID(),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	body["time"] = time.Now().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
