package interfaces

import (
	"context"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

// EmojiRepository provides store operations for custom workspace emoji
type EmojiRepository interface {
	// SaveMany upserts emoji by name, alias entries included
	SaveMany(ctx context.Context, emojis []*model.Emoji) error

	// Get retrieves one emoji. Returns nil without error when absent.
	Get(ctx context.Context, name types.EmojiName) (*model.Emoji, error)

	// List retrieves all emoji ordered by name
	List(ctx context.Context) ([]*model.Emoji, error)
}
