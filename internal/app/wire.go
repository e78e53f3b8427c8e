package app

import (
	"net/http"

	"go.uber.org/zap"

	"coopdesk/internal/api"
	"coopdesk/internal/domain"
	adminsvc "coopdesk/internal/services/admin"
	authsvc "coopdesk/internal/services/auth"
	platformsvc "coopdesk/internal/services/platform"
	portalsvc "coopdesk/internal/services/portal"
	"coopdesk/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Sessions domain.SessionStore
	Profiles domain.ProfileStore
	API      *api.Client
	Auth     *authsvc.Service
	Portal   domain.PortalService
	Admin    *adminsvc.Service
	Platform domain.PlatformService
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	// File-based stores
	sessionStore := store.NewSessionFileStore(cfg.Home)
	profileStore := store.NewProfileFileStore(cfg.Home)

	timeout, err := cfg.Settings.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// API client; the token is unlocked lazily on the first request.
	client := api.New(api.Options{
		BaseURL: cfg.Settings.APIURL,
		Tenant:  cfg.Settings.Tenant,
		HTTP:    httpClient,
		Tokens:  store.NewSessionTokens(sessionStore, cfg.Passphrase),
		Logger:  logger.Named("api"),
	})

	// High-level services
	authSvc := authsvc.New(client.Anonymous(), client, sessionStore, profileStore, authsvc.Target{
		APIURL: cfg.Settings.APIURL,
		Tenant: cfg.Settings.Tenant,
	})

	return &Wire{
		Sessions: sessionStore,
		Profiles: profileStore,
		API:      client,
		Auth:     authSvc,
		Portal:   portalsvc.New(client, cfg.Settings.TerminationFeePercent),
		Admin:    adminsvc.New(client),
		Platform: platformsvc.New(client),
		HTTP:     httpClient,
	}, nil
}
