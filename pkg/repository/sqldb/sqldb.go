package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
)

// DB is the bun-backed archive store. One implementation serves both the
// SQLite and PostgreSQL backends; only the dialect differs.
type DB struct {
	idb  bun.IDB
	conn *bun.DB // nil when transaction-scoped

	user      *userRepository
	emoji     *emojiRepository
	message   *messageRepository
	syncState *syncStateRepository
	config    *configRepository
}

var _ interfaces.Repository = &DB{}

// NewSQLite opens (or creates) a SQLite store at path
func NewSQLite(ctx context.Context, path string) (*DB, error) {
	sqlDB, err := sql.Open(sqliteshim.ShimName, "file:"+path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	// SQLite allows a single writer; funneling every connection through
	// one avoids SQLITE_BUSY during page transactions.
	sqlDB.SetMaxOpenConns(1)

	conn := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, goerr.Wrap(err, "failed to ping sqlite database", goerr.V("path", path))
	}
	return newDB(conn), nil
}

// NewPostgres opens a PostgreSQL store with the given DSN
func NewPostgres(ctx context.Context, dsn string) (*DB, error) {
	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	conn := bun.NewDB(sqlDB, pgdialect.New())
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, goerr.Wrap(err, "failed to ping postgres database")
	}
	return newDB(conn), nil
}

func newDB(conn *bun.DB) *DB {
	return wrap(conn, conn)
}

func wrap(idb bun.IDB, conn *bun.DB) *DB {
	return &DB{
		idb:       idb,
		conn:      conn,
		user:      &userRepository{idb: idb},
		emoji:     &emojiRepository{idb: idb},
		message:   &messageRepository{idb: idb},
		syncState: &syncStateRepository{idb: idb},
		config:    &configRepository{idb: idb},
	}
}

func (x *DB) User() interfaces.UserRepository {
	return x.user
}

func (x *DB) Emoji() interfaces.EmojiRepository {
	return x.emoji
}

func (x *DB) Message() interfaces.MessageRepository {
	return x.message
}

func (x *DB) SyncState() interfaces.SyncStateRepository {
	return x.syncState
}

func (x *DB) Config() interfaces.ConfigRepository {
	return x.config
}

// Init creates the schema if it does not exist and applies additive
// migrations. Called on every startup.
func (x *DB) Init(ctx context.Context) error {
	tables := []any{
		(*userRow)(nil),
		(*messageRow)(nil),
		(*reactionRow)(nil),
		(*fileRow)(nil),
		(*syncStateRow)(nil),
		(*configRow)(nil),
		(*emojiRow)(nil),
	}
	for _, table := range tables {
		if _, err := x.idb.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
			return goerr.Wrap(err, "failed to create table", goerr.V("model", fmt.Sprintf("%T", table)))
		}
	}

	indexes := []struct {
		name   string
		model  any
		column string
	}{
		{"idx_messages_channel", (*messageRow)(nil), "channel"},
		{"idx_messages_thread_ts", (*messageRow)(nil), "thread_ts"},
		{"idx_reactions_message_ts", (*reactionRow)(nil), "message_ts"},
		{"idx_files_message_ts", (*fileRow)(nil), "message_ts"},
	}
	for _, idx := range indexes {
		if _, err := x.idb.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.column).IfNotExists().Exec(ctx); err != nil {
			return goerr.Wrap(err, "failed to create index", goerr.V("index", idx.name))
		}
	}

	// Stores created before the channel_id column existed get it added
	// here. On an up-to-date schema the statement fails with a duplicate
	// column error, which is intentionally ignored.
	_, _ = x.idb.NewAddColumn().Model((*syncStateRow)(nil)).ColumnExpr("channel_id VARCHAR").Exec(ctx)

	return nil
}

// InTx runs fn against a transaction-scoped Repository. Nested calls use
// savepoints, so a message save inside a page transaction stays atomic.
func (x *DB) InTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Repository) error) error {
	return x.idb.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, wrap(tx, nil))
	})
}

func (x *DB) Close() error {
	if x.conn == nil {
		return nil
	}
	if err := x.conn.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}
