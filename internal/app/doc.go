// Package app wires application dependencies for the CLI.
//
// New resolves settings (defaults, config file, .env, environment, flags),
// builds the logger and the concrete stores, API clients and services, and
// exposes them through App for commands to use.
package app
