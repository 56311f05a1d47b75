package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/cli/config"
	"github.com/markclong/slack-archiver/pkg/service/storage"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var dataDir string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory holding the store file and downloaded assets",
			Value:       "data",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_DATA_DIR"),
			Destination: &dataDir,
		},
	}

	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create or update the store schema",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			dir := storage.New(dataDir)
			if err := dir.Ensure(); err != nil {
				return goerr.Wrap(err, "failed to prepare data directory")
			}

			repo, err := repoCfg.Configure(ctx, dir.DatabasePath())
			if err != nil {
				return goerr.Wrap(err, "failed to initialize store")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close store", "error", err.Error())
				}
			}()

			if err := repo.Init(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply schema migrations")
			}

			logger.Info("Migrations applied successfully", "backend", repoCfg.Backend())
			return nil
		},
	}
}
