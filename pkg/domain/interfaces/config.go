package interfaces

import "context"

// ConfigRepository provides the small key-value store for workspace
// metadata such as the workspace URL
type ConfigRepository interface {
	// Set upserts a key, last write wins
	Set(ctx context.Context, key, value string) error

	// Get retrieves a value. Returns "" without error when absent.
	Get(ctx context.Context, key string) (string, error)
}
