package model

import (
	"strings"

	"github.com/markclong/slack-archiver/pkg/domain/types"
)

// emojiAliasPrefix marks emoji.list entries that point at another emoji
// instead of an image URL, e.g. "alias:party_parrot".
const emojiAliasPrefix = "alias:"

// Emoji represents a custom workspace emoji stored in the archive.
// Alias entries keep their "alias:<target>" URL verbatim and never get a
// local file; consumers resolve them through AliasTarget.
type Emoji struct {
	Name      types.EmojiName
	URL       string // Image URL, or "alias:<target>" for alias entries
	LocalPath string // Store-relative path of the downloaded image, empty for aliases and failed downloads
}

// IsAlias reports whether the entry points at another emoji
func (x *Emoji) IsAlias() bool {
	return strings.HasPrefix(x.URL, emojiAliasPrefix)
}

// AliasTarget returns the short name the alias points at, or "" when the
// entry is not an alias
func (x *Emoji) AliasTarget() string {
	if !x.IsAlias() {
		return ""
	}
	return strings.TrimPrefix(x.URL, emojiAliasPrefix)
}
