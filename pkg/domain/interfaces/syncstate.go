package interfaces

import (
	"context"

	"github.com/markclong/slack-archiver/pkg/domain/model"
)

// SyncStateRepository provides store operations for per-channel sync
// progress
type SyncStateRepository interface {
	// Get retrieves the state of a channel. Returns nil without error
	// when the channel has never been archived.
	Get(ctx context.Context, channel string) (*model.SyncState, error)

	// Put upserts the state keyed by channel name. An empty ChannelID
	// preserves the stored one (runs that never resolved the ID must not
	// erase it).
	Put(ctx context.Context, state *model.SyncState) error

	// List retrieves the state of every archived channel ordered by name
	List(ctx context.Context) ([]*model.SyncState, error)
}
