// Package api exposes the files manager over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type FileService interface {
	CreateFile(ctx context.Context, userID string, in services.CreateFileInput) (*models.FileRecord, error)
	GetFile(ctx context.Context, userID, fileID string) (*models.FileRecord, error)
	ListFiles(ctx context.Context, userID, parentID string, page int) ([]*models.FileRecord, error)
	SetPublic(ctx context.Context, userID, fileID string, value bool) (*models.FileRecord, error)
	ResolveContent(ctx context.Context, userID, fileID, size string) (*services.Content, error)
}

type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Connect(ctx context.Context, email, password string) (string, error)
	Disconnect(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	Stats(ctx context.Context) (*services.Stats, error)
}

type StatusService interface {
	Status(ctx context.Context) services.Status
}

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address string
	logger  logging.Logger
	files   FileService
	users   UserService
	status  StatusService
}

func NewHTTPServer(address string, l logging.Logger, fs FileService, us UserService, ss StatusService) *HTTPServer {
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		files:   fs,
		users:   us,
		status:  ss,
	}
}

// Router builds the route table.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/status", s.getStatus)
	r.Get("/stats", s.getStats)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/users", s.postUser)
	r.Get("/connect", s.getConnect)
	r.Get("/disconnect", s.getDisconnect)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/users/me", s.getMe)

		r.Post("/files", s.postFile)
		r.Get("/files", s.listFiles)
		r.Get("/files/{id}", s.getFile)
		r.Put("/files/{id}/publish", s.publish)
		r.Put("/files/{id}/unpublish", s.unpublish)
	})

	r.With(s.optionalUser).Get("/files/{id}/data", s.getFileData)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
