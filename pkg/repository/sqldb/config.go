package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"
)

type configRepository struct {
	idb bun.IDB
}

func (x *configRepository) Set(ctx context.Context, key, value string) error {
	row := configRow{Key: key, Value: value}
	_, err := x.idb.NewInsert().
		Model(&row).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to set config", goerr.V("key", key))
	}
	return nil
}

func (x *configRepository) Get(ctx context.Context, key string) (string, error) {
	var row configRow
	err := x.idb.NewSelect().Model(&row).Where("key = ?", key).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to get config", goerr.V("key", key))
	}
	return row.Value, nil
}
