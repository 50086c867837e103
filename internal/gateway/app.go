// Package gateway initializes and runs the parkgate gateway: the same-origin
// HTTP server that fronts the parking backend for browser-style clients.
// It wires the router, CORS policy and forwarding proxy, and handles
// graceful shutdown.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mpavlovs/parkgate/internal/gateway/config"
	"github.com/mpavlovs/parkgate/internal/gateway/proxy"
	"github.com/mpavlovs/parkgate/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	router *gin.Engine
}

func NewApp(c *config.Config) *App {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	if c.BackendAPIURL == "" {
		logger.Warn(context.Background(),
			"BACKEND_API_URL is not set, proxied requests will fail")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(logger),
		cors.New(corsConfig(c)),
	)

	proxy.NewHandler(c.BackendAPIURL, logger).Register(router)

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &App{config: c, logger: logger, router: router}
}

func corsConfig(c *config.Config) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Cookie"}
	cfg.AllowCredentials = true
	if len(c.CORSAllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = c.CORSAllowOrigins
	}
	return cfg
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or
// an interrupt arrives, then drains connections within the configured
// shutdown timeout.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting gateway...", "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}

	app.logger.Info(ctx, "Gateway stopped")
}
