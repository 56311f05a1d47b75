package interfaces

import (
	"context"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

// MessageRepository provides store operations for archived messages and
// their reactions and files
type MessageRepository interface {
	// Save upserts the message row keyed by ts, replaces its reaction set
	// when msg.Reactions is non-nil, and upserts its files by ID. The
	// whole message commits or fails as one unit.
	Save(ctx context.Context, msg *model.Message) error

	// Get retrieves one message row without reactions or files. Returns
	// nil without error when absent.
	Get(ctx context.Context, ts types.MessageTS) (*model.Message, error)

	// ListTopLevel retrieves up to limit top-level messages (no thread
	// parent) of a channel, oldest first. A non-zero before bound returns
	// only messages strictly older, which pages backwards through
	// history.
	ListTopLevel(ctx context.Context, channel string, before types.MessageTS, limit int) ([]*model.Message, error)

	// ListThread retrieves the replies of a thread, oldest first. The
	// parent row itself is not included.
	ListThread(ctx context.Context, threadTS types.MessageTS) ([]*model.Message, error)

	// Reactions retrieves the stored reaction rows of one message
	Reactions(ctx context.Context, ts types.MessageTS) ([]*model.Reaction, error)

	// Files retrieves the stored file rows of one message
	Files(ctx context.Context, ts types.MessageTS) ([]*model.File, error)

	// Count returns the number of stored messages for a channel, thread
	// replies included
	Count(ctx context.Context, channel string) (int, error)
}
