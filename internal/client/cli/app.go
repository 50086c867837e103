package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mpavlovs/parkgate/internal/client/api"
	"github.com/mpavlovs/parkgate/internal/client/config"
	"github.com/mpavlovs/parkgate/internal/client/filecache"
	"github.com/mpavlovs/parkgate/internal/client/services"
	"github.com/mpavlovs/parkgate/internal/client/session"
	"github.com/mpavlovs/parkgate/internal/client/storage"
	"github.com/mpavlovs/parkgate/internal/logging"
)

type App struct {
	config   *config.Config
	client   *api.Client
	auth     services.AuthService
	account  services.AccountService
	catalog  services.CatalogService
	checkout services.CheckoutService
	cache    *filecache.Cache
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	cache, err := filecache.New(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error initializing file cache: %w", err)
	}

	// recover documents staged in a previous run
	if err := cache.ReloadFiles(ctx); err != nil {
		logger.Warn(ctx, "failed to reload cached files", "error", err)
	}

	apiClient := api.New(c.GatewayURL, session.NewStore(), logger)

	app := &App{
		config:   c,
		client:   apiClient,
		auth:     services.NewAuthService(apiClient),
		account:  services.NewAccountService(apiClient),
		catalog:  services.NewCatalogService(apiClient),
		checkout: services.NewCheckoutService(apiClient),
		cache:    cache,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	apiClient.OnSessionExpired(func() {
		fmt.Fprintln(app.out, "Session expired, please log in again.")
	})

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Session().AccessToken() != ""
}

// cmdCtx returns a per-command context bounded by the configured request
// timeout.
func (a *App) cmdCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	if err := a.cache.Close(); err != nil {
		return err
	}
	return a.db.Close()
}
