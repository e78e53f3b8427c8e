// Package store provides file-based persistence for coopdesk's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON under the configured home directory. All methods
// are concurrency-safe via internal locking and every write goes through a
// temp file and rename.
//
// The package includes:
//   - The bearer token session, encrypted with a passphrase
//     (SessionFileStore)
//   - Non-secret user profiles keyed by API URL and tenant (ProfileFileStore)
//   - A domain.TokenSource backed by the session store (SessionTokens)
package store
