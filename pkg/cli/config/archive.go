package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// ArchiveFile is the optional TOML settings file
type ArchiveFile struct {
	Archive ArchiveSection `toml:"archive"`
}

// ArchiveSection holds the [archive] table of the settings file. Every
// key is optional; explicit flags take precedence over file values.
type ArchiveSection struct {
	Channel         string   `toml:"channel"`
	DataDir         string   `toml:"data_dir"`
	ExcludeSubtypes []string `toml:"exclude_subtypes"`
	PageLimit       int      `toml:"page_limit"`
}

// Archive holds CLI flags for the archive target
type Archive struct {
	channel         string
	dataDir         string
	configPath      string
	pageLimit       int
	excludeSubtypes []string
}

// Flags returns CLI flags for archive configuration
func (x *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "channel",
			Usage:       "Slack channel name to archive",
			Category:    "Archive",
			Value:       "general",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_CHANNEL"),
			Destination: &x.channel,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory holding the store file and downloaded assets",
			Category:    "Archive",
			Value:       "data",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_DATA_DIR"),
			Destination: &x.dataDir,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML settings file",
			Category:    "Archive",
			Sources:     cli.EnvVars("SLACK_ARCHIVER_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

// Channel returns the channel name to archive
func (x *Archive) Channel() string {
	return x.channel
}

// DataDir returns the data directory root
func (x *Archive) DataDir() string {
	return x.dataDir
}

// PageLimit returns the configured history page size, 0 when unset
func (x *Archive) PageLimit() int {
	return x.pageLimit
}

// ExcludeSubtypes returns the configured subtype exclusion list, nil
// when unset
func (x *Archive) ExcludeSubtypes() []string {
	return x.excludeSubtypes
}

// Configure merges the optional settings file into the flag values and
// validates the result. Explicit flags win over the file, the file wins
// over defaults.
func (x *Archive) Configure(c *cli.Command) error {
	if x.configPath != "" {
		file, err := loadArchiveFile(x.configPath)
		if err != nil {
			return err
		}
		if file.Archive.Channel != "" && !c.IsSet("channel") {
			x.channel = file.Archive.Channel
		}
		if file.Archive.DataDir != "" && !c.IsSet("data-dir") {
			x.dataDir = file.Archive.DataDir
		}
		if file.Archive.PageLimit != 0 {
			x.pageLimit = file.Archive.PageLimit
		}
		if file.Archive.ExcludeSubtypes != nil {
			x.excludeSubtypes = file.Archive.ExcludeSubtypes
		}
	}

	if x.channel == "" {
		return goerr.Wrap(ErrInvalidConfig, "channel is required")
	}
	if x.dataDir == "" {
		return goerr.Wrap(ErrInvalidConfig, "data directory is required")
	}
	if x.pageLimit < 0 || x.pageLimit > 1000 {
		return goerr.Wrap(ErrInvalidConfig, "page limit must be between 1 and 1000", goerr.V(PageLimitKey, x.pageLimit))
	}
	return nil
}

func loadArchiveFile(path string) (*ArchiveFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read settings file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read settings file", goerr.V(ConfigPathKey, path))
	}

	var file ArchiveFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML settings", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}
