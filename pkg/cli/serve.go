package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/cli/config"
	httpctrl "github.com/markclong/slack-archiver/pkg/controller/http"
	"github.com/markclong/slack-archiver/pkg/service/storage"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var pageSize int
	var repoCfg config.Repository
	var archiveCfg config.Archive

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "page-size",
			Usage:       "Messages per page in the viewer API",
			Value:       httpctrl.DefaultPageSize,
			Sources:     cli.EnvVars("SLACK_ARCHIVER_PAGE_SIZE"),
			Destination: &pageSize,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve the archived channel as a read-only JSON API",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := archiveCfg.Configure(c); err != nil {
				return goerr.Wrap(err, "failed to load archive settings")
			}

			dir := storage.New(archiveCfg.DataDir())

			// The viewer never creates a store; pointing it at an empty
			// directory is an operator mistake worth a clear message.
			if repoCfg.Backend() == "sqlite" {
				if _, err := os.Stat(dir.DatabasePath()); os.IsNotExist(err) {
					return goerr.New("archive database not found, run sync first",
						goerr.V("path", dir.DatabasePath()))
				}
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

			srv := httpctrl.New(repo, dir.Root(), httpctrl.WithPageSize(pageSize))
			server := &http.Server{
				Addr:              addr,
				Handler:           srv,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "data_dir", dir.Root())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
