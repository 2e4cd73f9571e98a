// Package worker runs the thumbnail pipeline: a pool of consumers reading
// jobs from Redis, plus gRPC health and Prometheus endpoints.
package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config, l logging.Logger) *App {
	return &App{config: c, logger: l.With("module", "worker")}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run wires the dependencies and blocks until a shutdown signal arrives or a
// component fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	db, err := repomanager.Open(ctx, app.config.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     app.config.RedisAddr,
		Password: app.config.RedisPassword,
		DB:       app.config.RedisDB,
	})
	defer rdb.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	processor := NewProcessor(rm.Files(db), app.logger)
	q := queue.NewRedisQueue(rdb, app.config.QueueName)

	app.logger.Info(ctx, "Starting worker", "concurrency", app.config.WorkerConcurrency, "queue", app.config.QueueName)

	return app.serve(ctx, q, processor)
}

// serve runs the consumers and the side servers until ctx ends.
func (app *App) serve(ctx context.Context, source JobSource, processor JobProcessor) error {
	g, ctx := errgroup.WithContext(ctx)

	hs := health.NewServer()
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	g.Go(func() error { return app.runHealth(ctx, hs) })
	g.Go(func() error { return app.runMetrics(ctx) })

	n := app.config.WorkerConcurrency
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		c := &consumer{
			source:    source,
			processor: processor,
			logger:    app.logger.With("consumer", i),
		}
		g.Go(func() error { return c.run(ctx) })
	}

	err := g.Wait()
	hs.Shutdown()
	return err
}

func (app *App) runHealth(ctx context.Context, hs *health.Server) error {
	lis, err := net.Listen("tcp", app.config.WorkerHealthAddr)
	if err != nil {
		return fmt.Errorf("health listen: %w", err)
	}

	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		hs.Shutdown()
		srv.GracefulStop()
	}()

	app.logger.Info(ctx, "Starting gRPC health server", "address", app.config.WorkerHealthAddr)
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (app *App) runMetrics(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              app.config.WorkerMetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.WorkerMetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
