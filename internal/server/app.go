// Package server wires the API process: database, Redis, services and the
// HTTP server, with graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/api"
	"github.com/dmitrijs2005/filesmanager/internal/server/blob"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/dmitrijs2005/filesmanager/internal/server/sessions"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config, l logging.Logger) *App {
	return &App{config: c, logger: l}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	db, err := repomanager.Open(ctx, app.config.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     app.config.RedisAddr,
		Password: app.config.RedisPassword,
		DB:       app.config.RedisDB,
	})
	defer rdb.Close()

	sm := sessions.NewManager(
		sessions.NewRedisStore(rdb),
		[]byte(app.config.SecretKey),
		app.config.SessionValidityDuration,
		app.config.SessionCacheSize,
		app.config.SessionCacheTTL,
	)

	fs := services.NewFileService(db, rm, blob.NewWriter(app.config.StorageRoot), queue.NewRedisQueue(rdb, app.config.QueueName), app.logger)
	us := services.NewUserService(db, rm, sm, app.logger)
	ss := services.NewStatusService(db, rdb)

	srv := api.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, fs, us, ss)

	var wg sync.WaitGroup
	var runErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "Stopped")

	return runErr
}
