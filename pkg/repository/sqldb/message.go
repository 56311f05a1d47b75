package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

type messageRepository struct {
	idb bun.IDB
}

// Save upserts the message row, replaces its reaction set when carried,
// and upserts its files. Runs in its own (possibly nested) transaction so
// a message is never stored half-written.
func (x *messageRepository) Save(ctx context.Context, msg *model.Message) error {
	return x.idb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := newMessageRow(msg)
		_, err := tx.NewInsert().
			Model(&row).
			On("CONFLICT (ts) DO UPDATE").
			Set("channel = EXCLUDED.channel").
			Set("user_id = EXCLUDED.user_id").
			Set("text = EXCLUDED.text").
			Set("thread_ts = EXCLUDED.thread_ts").
			Set("reply_count = EXCLUDED.reply_count").
			Exec(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to save message", goerr.V("ts", msg.TS))
		}

		if msg.Reactions != nil {
			if _, err := tx.NewDelete().
				Model((*reactionRow)(nil)).
				Where("message_ts = ?", msg.TS.String()).
				Exec(ctx); err != nil {
				return goerr.Wrap(err, "failed to clear reactions", goerr.V("ts", msg.TS))
			}

			if len(msg.Reactions) > 0 {
				rows := make([]reactionRow, len(msg.Reactions))
				for i := range msg.Reactions {
					rows[i] = newReactionRow(msg.TS, &msg.Reactions[i])
				}
				if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
					return goerr.Wrap(err, "failed to save reactions", goerr.V("ts", msg.TS))
				}
			}
		}

		for i := range msg.Files {
			fr := newFileRow(msg.TS, &msg.Files[i])
			_, err := tx.NewInsert().
				Model(&fr).
				On("CONFLICT (id) DO UPDATE").
				Set("message_ts = EXCLUDED.message_ts").
				Set("name = EXCLUDED.name").
				Set("mimetype = EXCLUDED.mimetype").
				Set("url = EXCLUDED.url").
				Set("local_path = EXCLUDED.local_path").
				Exec(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to save file", goerr.V("ts", msg.TS), goerr.V("fileID", msg.Files[i].ID))
			}
		}

		return nil
	})
}

func (x *messageRepository) Get(ctx context.Context, ts types.MessageTS) (*model.Message, error) {
	var row messageRow
	err := x.idb.NewSelect().Model(&row).Where("ts = ?", ts.String()).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get message", goerr.V("ts", ts))
	}
	return row.toModel(), nil
}

func (x *messageRepository) ListTopLevel(ctx context.Context, channel string, before types.MessageTS, limit int) ([]*model.Message, error) {
	var rows []messageRow
	q := x.idb.NewSelect().
		Model(&rows).
		Where("channel = ?", channel).
		Where("thread_ts IS NULL").
		Order("ts DESC").
		Limit(limit)
	if !before.IsZero() {
		q = q.Where("ts < ?", before.String())
	}

	if err := q.Scan(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to list messages", goerr.V("channel", channel))
	}

	msgs := make([]*model.Message, len(rows))
	for i := range rows {
		msgs[i] = rows[i].toModel()
	}
	// The query walks backwards from the newest; readers want the page
	// oldest first.
	slices.Reverse(msgs)
	return msgs, nil
}

func (x *messageRepository) ListThread(ctx context.Context, threadTS types.MessageTS) ([]*model.Message, error) {
	var rows []messageRow
	err := x.idb.NewSelect().
		Model(&rows).
		Where("thread_ts = ?", threadTS.String()).
		Order("ts ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list thread", goerr.V("threadTS", threadTS))
	}

	msgs := make([]*model.Message, len(rows))
	for i := range rows {
		msgs[i] = rows[i].toModel()
	}
	return msgs, nil
}

func (x *messageRepository) Reactions(ctx context.Context, ts types.MessageTS) ([]*model.Reaction, error) {
	var rows []reactionRow
	err := x.idb.NewSelect().
		Model(&rows).
		Where("message_ts = ?", ts.String()).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reactions", goerr.V("ts", ts))
	}

	reactions := make([]*model.Reaction, len(rows))
	for i := range rows {
		reactions[i] = rows[i].toModel()
	}
	return reactions, nil
}

func (x *messageRepository) Files(ctx context.Context, ts types.MessageTS) ([]*model.File, error) {
	var rows []fileRow
	err := x.idb.NewSelect().
		Model(&rows).
		Where("message_ts = ?", ts.String()).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list files", goerr.V("ts", ts))
	}

	files := make([]*model.File, len(rows))
	for i := range rows {
		files[i] = rows[i].toModel()
	}
	return files, nil
}

func (x *messageRepository) Count(ctx context.Context, channel string) (int, error) {
	count, err := x.idb.NewSelect().
		Model((*messageRow)(nil)).
		Where("channel = ?", channel).
		Count(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count messages", goerr.V("channel", channel))
	}
	return count, nil
}
