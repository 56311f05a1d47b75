package model

import "github.com/markclong/slack-archiver/pkg/domain/types"

// User represents a workspace member stored in the archive
type User struct {
	ID          types.UserID
	Name        string // Slack account name (e.g. "john.doe")
	DisplayName string // Resolved display name shown in the viewer
	AvatarURL   string // Remote avatar URL (empty string = no avatar)
	AvatarLocal string // Store-relative path of the downloaded avatar, empty until fetched
}

// PreferredDisplayName resolves the name to show for a member. Slack
// profiles often leave display_name blank, so the first non-empty of
// display name, real name and account name wins.
func PreferredDisplayName(displayName, realName, accountName string) string {
	if displayName != "" {
		return displayName
	}
	if realName != "" {
		return realName
	}
	return accountName
}
