package fetch

import "context"

// Fetcher downloads a remote asset into a local file.
type Fetcher interface {
	// Fetch downloads url into dest, creating parent directories as
	// needed. Extra HTTP headers may be supplied for authenticated
	// downloads. It reports whether the file was written; failures are
	// logged as warnings and never returned, since a missing asset
	// must not abort a sync run.
	Fetch(ctx context.Context, url, dest string, headers map[string]string) bool
}
