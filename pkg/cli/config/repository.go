package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
	"github.com/markclong/slack-archiver/pkg/repository/memory"
	"github.com/markclong/slack-archiver/pkg/repository/sqldb"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for store backend configuration
type Repository struct {
	backend string
	dsn     string
}

// Flags returns CLI flags for repository configuration
func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Usage:       "Store backend (sqlite, postgres or memory)",
			Category:    "Database",
			Value:       "sqlite",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_DB"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "db-dsn",
			Usage:       "PostgreSQL DSN (required when using the postgres backend)",
			Category:    "Database",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_DB_DSN"),
			Destination: &x.dsn,
		},
	}
}

// Backend returns the configured backend type
func (x *Repository) Backend() string {
	return x.backend
}

// Configure opens a repository for the configured backend. sqlitePath is
// the store file used by the sqlite backend; the other backends ignore it.
// The caller is responsible for calling Close() on the returned repository.
func (x *Repository) Configure(ctx context.Context, sqlitePath string) (interfaces.Repository, error) {
	switch x.backend {
	case "sqlite":
		repo, err := sqldb.NewSQLite(ctx, sqlitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open sqlite store", goerr.V("path", sqlitePath))
		}
		logging.Default().Info("Using SQLite store", "path", sqlitePath)
		return repo, nil

	case "postgres":
		if x.dsn == "" {
			return nil, goerr.New("db-dsn is required when using the postgres backend")
		}
		repo, err := sqldb.NewPostgres(ctx, x.dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open postgres store")
		}
		logging.Default().Info("Using PostgreSQL store")
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory store (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid store backend", goerr.V("backend", x.backend))
	}
}
