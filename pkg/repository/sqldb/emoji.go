package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

type emojiRepository struct {
	idb bun.IDB
}

func (x *emojiRepository) SaveMany(ctx context.Context, emojis []*model.Emoji) error {
	if len(emojis) == 0 {
		return nil
	}

	rows := make([]emojiRow, len(emojis))
	for i, e := range emojis {
		rows[i] = newEmojiRow(e)
	}

	_, err := x.idb.NewInsert().
		Model(&rows).
		On("CONFLICT (name) DO UPDATE").
		Set("url = EXCLUDED.url").
		Set("local_path = EXCLUDED.local_path").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to save emojis", goerr.V("count", len(emojis)))
	}
	return nil
}

func (x *emojiRepository) Get(ctx context.Context, name types.EmojiName) (*model.Emoji, error) {
	var row emojiRow
	err := x.idb.NewSelect().Model(&row).Where("name = ?", name.String()).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get emoji", goerr.V("name", name))
	}
	return row.toModel(), nil
}

func (x *emojiRepository) List(ctx context.Context) ([]*model.Emoji, error) {
	var rows []emojiRow
	if err := x.idb.NewSelect().Model(&rows).Order("name ASC").Scan(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to list emojis")
	}

	emojis := make([]*model.Emoji, len(rows))
	for i := range rows {
		emojis[i] = rows[i].toModel()
	}
	return emojis, nil
}
