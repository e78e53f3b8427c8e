package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"coopdesk/internal/config"
	"coopdesk/internal/logging"
	"coopdesk/internal/render"
)

// Options are the command-line inputs App is built from.
type Options struct {
	Home       string
	Passphrase string
	Verbose    bool
	Stdout     io.Writer
	HTTP       *http.Client

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Override applies flag values after the file and environment.
	Override func(*config.Config)
}

// App is the shared context every subcommand runs with.
type App struct {
	*Wire
	Home     string
	Settings config.Config
	Out      *render.Printer
	Log      *zap.Logger
}

// New resolves settings and builds the application graph.
func New(opts Options) (*App, error) {
	if err := os.MkdirAll(opts.Home, 0o700); err != nil {
		return nil, err
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	if err := config.LoadDotEnv(".env", filepath.Join(opts.Home, ".env")); err != nil {
		return nil, err
	}
	settings, err := config.Load(opts.Home)
	if err != nil {
		return nil, err
	}
	settings.ApplyEnv(getenv)
	if opts.Override != nil {
		opts.Override(&settings)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{Verbose: opts.Verbose, File: settings.LogFile})
	if err != nil {
		return nil, err
	}

	w, err := NewWire(Config{
		Home:       opts.Home,
		Settings:   settings,
		Passphrase: opts.Passphrase,
		HTTP:       opts.HTTP,
		Logger:     logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	logger.Debug("app ready",
		zap.String("home", opts.Home),
		zap.String("api", settings.APIURL),
		zap.String("tenant", settings.Tenant),
	)
	return &App{
		Wire:     w,
		Home:     opts.Home,
		Settings: settings,
		Out:      render.New(stdout, settings.Currency, settings.Output),
		Log:      logger,
	}, nil
}

// Close flushes the logger.
func (a *App) Close() {
	// Sync on a terminal stderr reports EINVAL on some platforms.
	_ = a.Log.Sync()
}
