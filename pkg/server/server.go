// Package server exposes roadmap generation over HTTP.
//
// The engine itself does not guard against overlapping generations. The
// server allows one at a time and answers 409 while a generation is running.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nikogura/career-roadmap/pkg/layout"
	"github.com/nikogura/career-roadmap/pkg/logging"
	"github.com/nikogura/career-roadmap/pkg/profile"
	"github.com/nikogura/career-roadmap/pkg/store"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

const (
	// HeaderRequestID carries the per-request id.
	HeaderRequestID = "X-Request-ID"
	// HeaderRoadmapID carries the archive id of a stored roadmap.
	HeaderRoadmapID = "X-Roadmap-ID"

	localRequestID = "requestID"
)

// ErrBusy is reported when a generation is already running.
var ErrBusy = errors.New("generation already in progress")

// Generator produces roadmap documents.
type Generator interface {
	Generate(ctx context.Context, p profile.Profile) (out layout.Output, err error)
}

// Archive persists generated roadmaps.
type Archive interface {
	Save(ctx context.Context, rec store.Record) (saved store.Record, err error)
	Get(ctx context.Context, id uuid.UUID) (rec store.Record, err error)
}

// Server is the HTTP host.
type Server struct {
	app       *fiber.App
	generator Generator
	archive   Archive
	logger    *slog.Logger
	guard     *semaphore.Weighted
}

// Option customizes a Server.
type Option func(s *Server)

// WithArchive stores every successful roadmap in archive.
func WithArchive(archive Archive) (opt Option) {
	opt = func(s *Server) {
		s.archive = archive
	}
	return opt
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) (opt Option) {
	opt = func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
	return opt
}

// New builds the fiber app and registers routes.
func New(generator Generator, opts ...Option) (s *Server) {
	s = &Server{
		generator: generator,
		logger:    logging.Discard(),
		guard:     semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "career-roadmap",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(s.requestID)
	s.app.Get("/healthz", s.Health)

	api := s.app.Group("/api")
	api.Post("/roadmap", s.GenerateRoadmap)
	api.Get("/fields", s.Fields)
	api.Get("/recommendations", s.Recommendations)
	api.Get("/roadmaps/:id", s.GetRoadmap)

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() (app *fiber.App) {
	app = s.app
	return app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) (err error) {
	s.logger.Info("server.listen", slog.String("addr", addr))
	err = s.app.Listen(addr)
	if err != nil {
		err = errors.Wrapf(err, "server failed on %s", addr)
		return err
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) (err error) {
	err = s.app.ShutdownWithContext(ctx)
	if err != nil {
		err = errors.Wrap(err, "server shutdown failed")
		return err
	}
	return err
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals(localRequestID, id)
	c.Set(HeaderRequestID, id)

	start := time.Now()
	err := c.Next()
	if err != nil {
		err = s.handleError(c, err)
	}

	s.logger.Info("http.request",
		slog.String("request_id", id),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", c.Response().StatusCode()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) requestLogger(c *fiber.Ctx) (logger *slog.Logger) {
	id, _ := c.Locals(localRequestID).(string)
	logger = s.logger.With(slog.String("request_id", id))
	return logger
}
