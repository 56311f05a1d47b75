package usecase

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
	"github.com/markclong/slack-archiver/pkg/utils/errutil"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
)

// SyncUsers refreshes the full member directory and downloads avatars
// that are not yet present locally. A remote API failure aborts only
// this pass; directory data from earlier runs stays intact.
func (uc *UseCases) SyncUsers(ctx context.Context) error {
	logger := logging.From(ctx)

	remote, err := uc.slack.ListUsers(ctx)
	if err != nil {
		errutil.Handle(ctx, err, "failed to fetch users")
		return nil
	}

	users := make([]*model.User, 0, len(remote))
	for _, ru := range remote {
		user := &model.User{
			ID:          ru.ID,
			Name:        ru.Name,
			DisplayName: model.PreferredDisplayName(ru.DisplayName, ru.RealName, ru.Name),
			AvatarURL:   ru.AvatarURL,
		}

		// The row is stored regardless of the download outcome; a
		// failed avatar just leaves the local path empty.
		if ru.AvatarURL != "" {
			dest, rel := uc.dir.Avatar(ru.ID)
			if uc.fetchIfAbsent(ctx, ru.AvatarURL, dest, nil) {
				user.AvatarLocal = rel
			}
		}

		users = append(users, user)
	}

	if err := uc.repo.User().SaveMany(ctx, users); err != nil {
		return goerr.Wrap(err, "failed to store users")
	}

	logger.Info("users synced", "count", len(users))

	return nil
}

// SyncEmoji refreshes the custom emoji table. Alias entries are stored
// without a local image; everything else is downloaded unless the file
// already exists.
func (uc *UseCases) SyncEmoji(ctx context.Context) error {
	logger := logging.From(ctx)

	table, err := uc.slack.ListEmoji(ctx)
	if err != nil {
		errutil.Handle(ctx, err, "failed to fetch emoji")
		return nil
	}

	emojis := make([]*model.Emoji, 0, len(table))
	for name, url := range table {
		emoji := &model.Emoji{
			Name: types.EmojiName(name),
			URL:  url,
		}

		if !emoji.IsAlias() {
			dest, rel := uc.dir.Emoji(emoji.Name, url)
			if uc.fetchIfAbsent(ctx, url, dest, nil) {
				emoji.LocalPath = rel
			}
		}

		emojis = append(emojis, emoji)
	}

	if err := uc.repo.Emoji().SaveMany(ctx, emojis); err != nil {
		return goerr.Wrap(err, "failed to store emoji")
	}

	logger.Info("emoji synced", "count", len(emojis))

	return nil
}

// fetchIfAbsent downloads url into dest unless the file already exists.
// It reports whether dest is usable, from this download or an earlier
// one.
func (uc *UseCases) fetchIfAbsent(ctx context.Context, url, dest string, headers map[string]string) bool {
	if _, err := os.Stat(dest); err == nil {
		return true
	}

	return uc.fetcher.Fetch(ctx, url, dest, headers)
}
