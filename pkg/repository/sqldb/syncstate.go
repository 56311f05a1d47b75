package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"

	"github.com/markclong/slack-archiver/pkg/domain/model"
)

type syncStateRepository struct {
	idb bun.IDB
}

func (x *syncStateRepository) Get(ctx context.Context, channel string) (*model.SyncState, error) {
	var row syncStateRow
	err := x.idb.NewSelect().Model(&row).Where("channel = ?", channel).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get sync state", goerr.V("channel", channel))
	}
	return row.toModel(), nil
}

func (x *syncStateRepository) Put(ctx context.Context, state *model.SyncState) error {
	row := newSyncStateRow(state)
	// An empty channel ID inserts as NULL, so COALESCE keeps whatever a
	// previous run resolved.
	_, err := x.idb.NewInsert().
		Model(&row).
		On("CONFLICT (channel) DO UPDATE").
		Set("oldest_ts = EXCLUDED.oldest_ts").
		Set("newest_ts = EXCLUDED.newest_ts").
		Set("channel_id = COALESCE(EXCLUDED.channel_id, sync_state.channel_id)").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to put sync state", goerr.V("channel", state.Channel))
	}
	return nil
}

func (x *syncStateRepository) List(ctx context.Context) ([]*model.SyncState, error) {
	var rows []syncStateRow
	if err := x.idb.NewSelect().Model(&rows).Order("channel ASC").Scan(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to list sync states")
	}

	states := make([]*model.SyncState, len(rows))
	for i := range rows {
		states[i] = rows[i].toModel()
	}
	return states, nil
}
