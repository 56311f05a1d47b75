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

type userRepository struct {
	idb bun.IDB
}

func (x *userRepository) SaveMany(ctx context.Context, users []*model.User) error {
	if len(users) == 0 {
		return nil
	}

	rows := make([]userRow, len(users))
	for i, u := range users {
		rows[i] = newUserRow(u)
	}

	_, err := x.idb.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("display_name = EXCLUDED.display_name").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("avatar_local = EXCLUDED.avatar_local").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to save users", goerr.V("count", len(users)))
	}
	return nil
}

func (x *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	var row userRow
	err := x.idb.NewSelect().Model(&row).Where("id = ?", id.String()).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (x *userRepository) List(ctx context.Context) ([]*model.User, error) {
	var rows []userRow
	if err := x.idb.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}

	users := make([]*model.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toModel()
	}
	return users, nil
}
