// Package server exposes the MiniVault HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/zulandar/minivault/internal/logging"
	"github.com/zulandar/minivault/internal/models"
	"github.com/zulandar/minivault/internal/responder"
)

const (
	defaultHost     = "0.0.0.0"
	defaultPort     = 8000
	shutdownTimeout = 5 * time.Second
)

// Appender persists one prompt/response pair. *interactionlog.Writer
// satisfies it.
type Appender interface {
	Append(input models.PromptInput, output models.GenerateResponse) (models.LogEntry, error)
}

// Deps are the collaborators the HTTP handlers need.
type Deps struct {
	Log       Appender
	Responder responder.Responder
	Logger    logrus.FieldLogger
}

// StartOpts holds configuration for the API server.
type StartOpts struct {
	Deps
	Host string
	Port int
	Out  io.Writer
}

// NewRouter builds the gin engine with all routes and middleware registered.
func NewRouter(deps Deps) (*gin.Engine, error) {
	if deps.Log == nil {
		return nil, errors.New("server: interaction log is required")
	}
	if deps.Responder == nil {
		deps.Responder = responder.New()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	registerValidatorTagNames()

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(accessLog(deps.Logger))

	registerRoutes(router, deps)
	return router, nil
}

// Start launches the API server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Host == "" {
		opts.Host = defaultHost
	}
	if opts.Port <= 0 {
		opts.Port = defaultPort
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := NewRouter(opts.Deps)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shutdown drains in-flight requests; Start waits for it below.
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "MiniVault API running at http://%s\n", addr)
	}

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	if err := <-done; err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
