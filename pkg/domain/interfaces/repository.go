package interfaces

import "context"

// Repository defines the interface for the archive store
type Repository interface {
	User() UserRepository
	Emoji() EmojiRepository
	Message() MessageRepository
	SyncState() SyncStateRepository
	Config() ConfigRepository

	// Init creates the schema if it does not exist and applies additive
	// migrations. Safe to call on every startup.
	Init(ctx context.Context) error

	// InTx runs fn against a transaction-scoped Repository. Writes made
	// through it commit together when fn returns nil and roll back when
	// fn returns an error. Nesting is allowed.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error

	Close() error
}
