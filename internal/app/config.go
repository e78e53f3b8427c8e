package app

import (
	"net/http"

	"go.uber.org/zap"

	"coopdesk/internal/config"
)

// Config holds runtime wiring options for building the dependency graph.
type Config struct {
	Home       string        // data directory, e.g. $HOME/.coopdesk
	Settings   config.Config // resolved settings
	Passphrase string        // unlocks the stored session
	HTTP       *http.Client  // optional; defaults to a client with Settings' timeout
	Logger     *zap.Logger   // optional; defaults to a no-op logger
}
