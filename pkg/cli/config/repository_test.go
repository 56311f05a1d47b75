package config_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/markclong/slack-archiver/pkg/cli/config"
)

func TestRepositoryConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("memory", "")
		repo, err := cfg.Configure(ctx, "")
		gt.NoError(t, err).Required()
		gt.Value(t, repo).NotNil()
		gt.NoError(t, repo.Close())
	})

	t.Run("sqlite backend creates the store file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "slack.db")
		cfg := config.NewRepositoryForTest("sqlite", "")

		repo, err := cfg.Configure(ctx, path)
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			gt.NoError(t, repo.Close())
		})

		gt.NoError(t, repo.Init(ctx))
	})

	t.Run("postgres backend requires a DSN", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("postgres", "")
		_, err := cfg.Configure(ctx, "")
		gt.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("mongodb", "")
		_, err := cfg.Configure(ctx, "")
		gt.Error(t, err)
	})
}
