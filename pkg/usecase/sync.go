package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/utils/errutil"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
)

// Run executes one complete archive pass: workspace info, the emoji and
// user directories, then incremental channel history.
func (uc *UseCases) Run(ctx context.Context) error {
	logger := logging.From(ctx)

	// The workspace URL is only needed to build permalinks when
	// browsing, so a failure here must not stop the sync.
	if info, err := uc.slack.AuthInfo(ctx); err != nil {
		errutil.Handle(ctx, err, "failed to fetch workspace info")
	} else if err := uc.repo.Config().Set(ctx, model.ConfigKeyWorkspaceURL, info.URL); err != nil {
		errutil.Handle(ctx, err, "failed to store workspace URL")
	}

	channelID, err := uc.slack.FindChannel(ctx, uc.channel)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve channel", goerr.V("channel", uc.channel))
	}
	logger.Info("channel resolved", "channel", uc.channel, "channel_id", channelID)

	if err := uc.SyncEmoji(ctx); err != nil {
		return err
	}
	if err := uc.SyncUsers(ctx); err != nil {
		return err
	}
	if err := uc.SyncMessages(ctx, channelID); err != nil {
		return err
	}

	logger.Info("archive complete", "channel", uc.channel)

	return nil
}
