package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/cli/config"
	"github.com/markclong/slack-archiver/pkg/domain/types"
	"github.com/markclong/slack-archiver/pkg/service/storage"
	"github.com/markclong/slack-archiver/pkg/service/worker"
	"github.com/markclong/slack-archiver/pkg/usecase"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSync() *cli.Command {
	var interval time.Duration
	var slackCfg config.Slack
	var repoCfg config.Repository
	var archiveCfg config.Archive

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Re-run the sync on this interval instead of exiting (0 runs once)",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_INTERVAL"),
			Destination: &interval,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Archive new messages from the configured channel",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := archiveCfg.Configure(c); err != nil {
				return goerr.Wrap(err, "failed to load archive settings")
			}

			dir := storage.New(archiveCfg.DataDir())
			if err := dir.Ensure(); err != nil {
				return goerr.Wrap(err, "failed to prepare data directory")
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}

			repo, err := repoCfg.Configure(ctx, dir.DatabasePath())
			if err != nil {
				return goerr.Wrap(err, "failed to initialize store")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close store", "error", err.Error())
				}
			}()

			if err := repo.Init(ctx); err != nil {
				return goerr.Wrap(err, "failed to initialize store schema")
			}

			opts := []usecase.Option{
				usecase.WithFileToken(slackCfg.Token()),
			}
			if limit := archiveCfg.PageLimit(); limit > 0 {
				opts = append(opts, usecase.WithPageLimit(limit))
			}
			if subtypes := archiveCfg.ExcludeSubtypes(); subtypes != nil {
				opts = append(opts, usecase.WithExcludedSubTypes(subtypes))
			}

			uc := usecase.New(repo, slackSvc, dir, archiveCfg.Channel(), opts...)

			// Each run carries its own ID so log lines from consecutive
			// cycles stay attributable.
			runOnce := func(ctx context.Context) error {
				ctx = logging.With(ctx, logging.Default().With("run_id", types.NewRunID()))
				logging.From(ctx).Info("Starting archive run",
					"channel", archiveCfg.Channel(),
					"data_dir", archiveCfg.DataDir(),
					"backend", repoCfg.Backend(),
					"slack", slackCfg,
				)
				return uc.Run(ctx)
			}

			if interval <= 0 {
				return runOnce(ctx)
			}

			w := worker.New(runOnce, interval)
			w.Start(ctx)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
			}

			w.Stop()
			return nil
		},
	}
}
