package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ChannelID represents a Slack conversation identifier (e.g. "C0123456789")
type ChannelID string

// Validate checks if the ChannelID is valid
func (x ChannelID) Validate() error {
	if x == "" {
		return goerr.New("channel ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ChannelID
func (x ChannelID) String() string {
	return string(x)
}

// UserID represents a Slack user or bot identifier
type UserID string

// Validate checks if the UserID is valid
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (x UserID) String() string {
	return string(x)
}

// EmojiName represents a custom emoji short name without colons
type EmojiName string

// Validate checks if the EmojiName is valid
func (x EmojiName) Validate() error {
	if x == "" {
		return goerr.New("emoji name cannot be empty")
	}
	return nil
}

// String returns the string representation of EmojiName
func (x EmojiName) String() string {
	return string(x)
}

// FileID represents a Slack file attachment identifier
type FileID string

// Validate checks if the FileID is valid
func (x FileID) Validate() error {
	if x == "" {
		return goerr.New("file ID cannot be empty")
	}
	return nil
}

// String returns the string representation of FileID
func (x FileID) String() string {
	return string(x)
}

// RunID identifies one archival run in logs
type RunID string

// NewRunID generates a new random RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// String returns the string representation of RunID
func (x RunID) String() string {
	return string(x)
}
