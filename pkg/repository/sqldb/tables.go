package sqldb

import (
	"github.com/uptrace/bun"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

// Row structs mirror the store schema. Columns that hold "no value" as
// NULL carry the nullzero tag so the empty string never reaches the
// database.

type userRow struct {
	bun.BaseModel `bun:"table:users"`

	ID          string `bun:"id,pk"`
	Name        string `bun:"name"`
	DisplayName string `bun:"display_name"`
	AvatarURL   string `bun:"avatar_url"`
	AvatarLocal string `bun:"avatar_local,nullzero"`
}

func newUserRow(u *model.User) userRow {
	return userRow{
		ID:          u.ID.String(),
		Name:        u.Name,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		AvatarLocal: u.AvatarLocal,
	}
}

func (x *userRow) toModel() *model.User {
	return &model.User{
		ID:          types.UserID(x.ID),
		Name:        x.Name,
		DisplayName: x.DisplayName,
		AvatarURL:   x.AvatarURL,
		AvatarLocal: x.AvatarLocal,
	}
}

type messageRow struct {
	bun.BaseModel `bun:"table:messages"`

	TS         string `bun:"ts,pk"`
	Channel    string `bun:"channel"`
	UserID     string `bun:"user_id"`
	Text       string `bun:"text"`
	ThreadTS   string `bun:"thread_ts,nullzero"`
	ReplyCount int    `bun:"reply_count"`
}

func newMessageRow(m *model.Message) messageRow {
	return messageRow{
		TS:         m.TS.String(),
		Channel:    m.Channel,
		UserID:     m.AuthorID.String(),
		Text:       m.Text,
		ThreadTS:   m.ThreadTS.String(),
		ReplyCount: m.ReplyCount,
	}
}

func (x *messageRow) toModel() *model.Message {
	return &model.Message{
		TS:         types.MessageTS(x.TS),
		Channel:    x.Channel,
		AuthorID:   types.UserID(x.UserID),
		Text:       x.Text,
		ThreadTS:   types.MessageTS(x.ThreadTS),
		ReplyCount: x.ReplyCount,
	}
}

type reactionRow struct {
	bun.BaseModel `bun:"table:reactions"`

	ID        int64    `bun:"id,pk,autoincrement"`
	MessageTS string   `bun:"message_ts"`
	EmojiName string   `bun:"emoji_name"`
	UserIDs   []string `bun:"user_ids"` // stored as JSON in both dialects
}

func newReactionRow(ts types.MessageTS, r *model.Reaction) reactionRow {
	userIDs := make([]string, len(r.UserIDs))
	for i, id := range r.UserIDs {
		userIDs[i] = id.String()
	}
	return reactionRow{
		MessageTS: ts.String(),
		EmojiName: r.Name,
		UserIDs:   userIDs,
	}
}

func (x *reactionRow) toModel() *model.Reaction {
	userIDs := make([]types.UserID, len(x.UserIDs))
	for i, id := range x.UserIDs {
		userIDs[i] = types.UserID(id)
	}
	return &model.Reaction{
		ID:        x.ID,
		MessageTS: types.MessageTS(x.MessageTS),
		Name:      x.EmojiName,
		UserIDs:   userIDs,
	}
}

type fileRow struct {
	bun.BaseModel `bun:"table:files"`

	ID        string `bun:"id,pk"`
	MessageTS string `bun:"message_ts"`
	Name      string `bun:"name"`
	Mimetype  string `bun:"mimetype"`
	URL       string `bun:"url"`
	LocalPath string `bun:"local_path,nullzero"`
}

func newFileRow(ts types.MessageTS, f *model.File) fileRow {
	return fileRow{
		ID:        f.ID.String(),
		MessageTS: ts.String(),
		Name:      f.Name,
		Mimetype:  f.Mimetype,
		URL:       f.URL,
		LocalPath: f.LocalPath,
	}
}

func (x *fileRow) toModel() *model.File {
	return &model.File{
		ID:        types.FileID(x.ID),
		MessageTS: types.MessageTS(x.MessageTS),
		Name:      x.Name,
		Mimetype:  x.Mimetype,
		URL:       x.URL,
		LocalPath: x.LocalPath,
	}
}

type syncStateRow struct {
	bun.BaseModel `bun:"table:sync_state,alias:sync_state"`

	Channel   string `bun:"channel,pk"`
	OldestTS  string `bun:"oldest_ts,nullzero"`
	NewestTS  string `bun:"newest_ts,nullzero"`
	ChannelID string `bun:"channel_id,nullzero"`
}

func newSyncStateRow(s *model.SyncState) syncStateRow {
	return syncStateRow{
		Channel:   s.Channel,
		OldestTS:  s.OldestTS.String(),
		NewestTS:  s.NewestTS.String(),
		ChannelID: s.ChannelID.String(),
	}
}

func (x *syncStateRow) toModel() *model.SyncState {
	return &model.SyncState{
		Channel:   x.Channel,
		OldestTS:  types.MessageTS(x.OldestTS),
		NewestTS:  types.MessageTS(x.NewestTS),
		ChannelID: types.ChannelID(x.ChannelID),
	}
}

type configRow struct {
	bun.BaseModel `bun:"table:config"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value"`
}

type emojiRow struct {
	bun.BaseModel `bun:"table:emojis"`

	Name      string `bun:"name,pk"`
	URL       string `bun:"url"`
	LocalPath string `bun:"local_path,nullzero"`
}

func newEmojiRow(e *model.Emoji) emojiRow {
	return emojiRow{
		Name:      e.Name.String(),
		URL:       e.URL,
		LocalPath: e.LocalPath,
	}
}

func (x *emojiRow) toModel() *model.Emoji {
	return &model.Emoji{
		Name:      types.EmojiName(x.Name),
		URL:       x.URL,
		LocalPath: x.LocalPath,
	}
}
