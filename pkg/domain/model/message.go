package model

import "github.com/markclong/slack-archiver/pkg/domain/types"

// UnknownAuthorID is stored when a message carries neither a user nor a
// bot identifier (some system-generated messages do this).
const UnknownAuthorID types.UserID = "unknown"

// AuthorKind classifies where a message's author identifier came from
type AuthorKind int

const (
	// AuthorUser means the message carried a regular user ID
	AuthorUser AuthorKind = iota
	// AuthorBot means only a bot ID was present
	AuthorBot
	// AuthorUnknown means the message carried no author at all
	AuthorUnknown
)

// Author is the resolved origin of a message
type Author struct {
	Kind AuthorKind

	id types.UserID
}

// ResolveAuthor picks the author identity in preference order: user ID,
// then bot ID, then unknown.
func ResolveAuthor(userID, botID types.UserID) Author {
	switch {
	case userID != "":
		return Author{Kind: AuthorUser, id: userID}
	case botID != "":
		return Author{Kind: AuthorBot, id: botID}
	default:
		return Author{Kind: AuthorUnknown}
	}
}

// ID returns the identifier to store for the author. Unknown authors
// map to the fixed sentinel so the column is never empty.
func (x Author) ID() types.UserID {
	if x.Kind == AuthorUnknown {
		return UnknownAuthorID
	}
	return x.id
}

// Message represents one archived message row. ThreadTS is zero for
// top-level messages and never equals TS: a thread parent is stored as a
// top-level row, not as its own child.
type Message struct {
	TS         types.MessageTS
	Channel    string // Channel name the archive run targeted
	AuthorID   types.UserID
	Text       string
	ThreadTS   types.MessageTS
	ReplyCount int

	// Reactions is the full replacement set for the message. nil means
	// the capture carried no reaction data and stored rows must be left
	// untouched; an empty non-nil slice clears them.
	Reactions []Reaction
	// Files are upserted individually by their Slack file ID.
	Files []File
}

// IsThreadReply reports whether the message belongs to a thread as a child
func (x *Message) IsThreadReply() bool {
	return !x.ThreadTS.IsZero()
}

// Reaction represents one emoji reaction on a message with everyone who
// used it. Identity is the surrogate store row ID; the set for a message
// is always replaced wholesale.
type Reaction struct {
	ID        int64 // Assigned by the store, zero before first save
	MessageTS types.MessageTS
	Name      string
	UserIDs   []types.UserID
}

// File represents a file attached to a message
type File struct {
	ID        types.FileID
	MessageTS types.MessageTS
	Name      string
	Mimetype  string
	URL       string // Private download URL, requires bearer auth
	LocalPath string // Store-relative path of the downloaded file, empty until fetched
}
