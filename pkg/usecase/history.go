package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
	slacksvc "github.com/markclong/slack-archiver/pkg/service/slack"
	"github.com/markclong/slack-archiver/pkg/utils/errutil"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
)

// SyncMessages walks the channel history and persists every message
// together with its thread replies. When a previous run recorded a sync
// state, only messages newer than that boundary are requested.
func (uc *UseCases) SyncMessages(ctx context.Context, channelID types.ChannelID) error {
	logger := logging.From(ctx)

	state, err := uc.repo.SyncState().Get(ctx, uc.channel)
	if err != nil {
		return goerr.Wrap(err, "failed to read sync state", goerr.V("channel", uc.channel))
	}

	var oldest types.MessageTS
	if state != nil && !state.NewestTS.IsZero() {
		oldest = state.NewestTS
		logger.Info("resuming sync", "channel", uc.channel, "newer_than", oldest)
	} else {
		logger.Info("performing initial sync", "channel", uc.channel)
	}

	return uc.walkHistory(ctx, channelID, oldest)
}

// walkHistory pages through channel history newest first. Each page is
// committed in its own transaction together with the thread replies of
// its messages, so an API failure mid-walk keeps every committed page
// and only skips the sync state merge.
func (uc *UseCases) walkHistory(ctx context.Context, channelID types.ChannelID, oldest types.MessageTS) error {
	logger := logging.From(ctx)

	var messageCount, threadCount int
	var first, last types.MessageTS

	var cursor string
	for {
		page, err := uc.slack.History(ctx, slacksvc.HistoryRequest{
			ChannelID: channelID,
			Oldest:    oldest,
			Cursor:    cursor,
			Limit:     uc.pageLimit,
		})
		if err != nil {
			errutil.Handle(ctx, err, "failed to fetch history page")
			return nil
		}

		err = uc.repo.InTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
			for _, msg := range page.Messages {
				if uc.excluded[msg.SubType] {
					continue
				}

				if err := uc.saveMessage(ctx, tx, msg); err != nil {
					return err
				}
				messageCount++

				if first.IsZero() || msg.TS.Before(first) {
					first = msg.TS
				}
				if last.IsZero() || msg.TS.After(last) {
					last = msg.TS
				}

				if msg.ReplyCount > 0 {
					replies, err := uc.expandThread(ctx, tx, channelID, msg.TS)
					if err != nil {
						return err
					}
					threadCount += replies
				}
			}

			return nil
		})
		if err != nil {
			return goerr.Wrap(err, "failed to store history page", goerr.V("channel", uc.channel))
		}

		cursor = page.NextCursor
		if cursor == "" {
			break
		}
		logger.Info("fetched history page", "channel", uc.channel, "messages", messageCount)
	}

	// The boundary merge happens only after a complete walk; a walk
	// that saw no messages leaves the state alone.
	if !first.IsZero() && !last.IsZero() {
		prior, err := uc.repo.SyncState().Get(ctx, uc.channel)
		if err != nil {
			return goerr.Wrap(err, "failed to read sync state", goerr.V("channel", uc.channel))
		}
		merged := model.MergeSyncState(prior, uc.channel, first, last, channelID)
		if err := uc.repo.SyncState().Put(ctx, merged); err != nil {
			return goerr.Wrap(err, "failed to store sync state", goerr.V("channel", uc.channel))
		}
	}

	logger.Info("messages synced",
		"channel", uc.channel,
		"messages", messageCount,
		"thread_replies", threadCount,
	)

	return nil
}

// expandThread pages through one thread and persists every reply. The
// parent message reappears in the first page and is skipped since the
// caller already persisted it. An API failure returns the count of
// replies persisted so far without failing the walk.
func (uc *UseCases) expandThread(ctx context.Context, tx interfaces.Repository, channelID types.ChannelID, parentTS types.MessageTS) (int, error) {
	count := 0

	var cursor string
	for {
		page, err := uc.slack.Replies(ctx, slacksvc.RepliesRequest{
			ChannelID: channelID,
			ThreadTS:  parentTS,
			Cursor:    cursor,
			Limit:     uc.pageLimit,
		})
		if err != nil {
			errutil.Handle(ctx, err, "failed to fetch thread replies")
			return count, nil
		}

		for _, msg := range page.Messages {
			if msg.TS == parentTS {
				continue
			}

			if err := uc.saveMessage(ctx, tx, msg); err != nil {
				return count, err
			}
			count++
		}

		cursor = page.NextCursor
		if cursor == "" {
			return count, nil
		}
	}
}
