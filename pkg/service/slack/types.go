package slack

import (
	"context"
	"errors"

	"github.com/markclong/slack-archiver/pkg/domain/types"
)

// ErrChannelNotFound is returned by FindChannel when no channel in the
// workspace matches the requested name.
var ErrChannelNotFound = errors.New("channel not found")

// Service provides the Slack Web API surface needed to archive a channel.
type Service interface {
	// AuthInfo identifies the workspace the configured token belongs to.
	AuthInfo(ctx context.Context) (*AuthInfo, error)

	// FindChannel resolves a channel name to its ID, searching public
	// and private conversations. Returns ErrChannelNotFound when the
	// name does not exist in the workspace.
	FindChannel(ctx context.Context, name string) (types.ChannelID, error)

	// ListUsers retrieves every member of the workspace.
	ListUsers(ctx context.Context) ([]User, error)

	// ListEmoji retrieves the custom emoji table as a name to URL
	// mapping. Alias entries keep their "alias:" URL marker.
	ListEmoji(ctx context.Context) (map[string]string, error)

	// History fetches one page of channel history, newest first.
	History(ctx context.Context, req HistoryRequest) (*HistoryPage, error)

	// Replies fetches one page of a thread, oldest first. The parent
	// message is included in the first page.
	Replies(ctx context.Context, req RepliesRequest) (*HistoryPage, error)
}

// AuthInfo describes the workspace behind a token.
type AuthInfo struct {
	URL    string
	Team   string
	TeamID string
}

// HistoryRequest selects one page of channel history.
type HistoryRequest struct {
	ChannelID types.ChannelID
	// Oldest is an exclusive lower bound; zero requests the full history.
	Oldest types.MessageTS
	Cursor string
	Limit  int
}

// RepliesRequest selects one page of a thread.
type RepliesRequest struct {
	ChannelID types.ChannelID
	ThreadTS  types.MessageTS
	Cursor    string
	Limit     int
}

// HistoryPage is one page of messages plus the cursor for the next
// page, empty when the walk is complete.
type HistoryPage struct {
	Messages   []Message
	NextCursor string
}

// Message is one message as delivered by the history and replies
// endpoints.
type Message struct {
	TS         types.MessageTS
	UserID     types.UserID
	BotID      types.UserID
	Text       string
	ThreadTS   types.MessageTS
	ReplyCount int
	SubType    string
	// Reactions is nil when the payload carried no reaction block, as
	// opposed to an empty list, so stored reactions are not clobbered
	// by endpoints that omit them.
	Reactions []Reaction
	Files     []File
}

// Reaction is one emoji with the users who applied it.
type Reaction struct {
	Name    types.EmojiName
	UserIDs []types.UserID
}

// File is one attachment shared with a message.
type File struct {
	ID       types.FileID
	Name     string
	Mimetype string
	URL      string
}

// User is one workspace member.
type User struct {
	ID          types.UserID
	Name        string
	DisplayName string
	RealName    string
	AvatarURL   string
}
