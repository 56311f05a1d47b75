package interfaces

import (
	"context"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

// UserRepository provides store operations for workspace members
type UserRepository interface {
	// SaveMany upserts users by ID. Re-saving an existing user replaces
	// every column, so directory syncs always converge on the latest
	// profile data.
	SaveMany(ctx context.Context, users []*model.User) error

	// Get retrieves one user. Returns nil without error when absent.
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// List retrieves all users ordered by ID
	List(ctx context.Context) ([]*model.User, error)
}
