package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
	"github.com/markclong/slack-archiver/pkg/utils/safe"
)

// DefaultTimeout bounds a single asset download.
const DefaultTimeout = 30 * time.Second

type client struct {
	http *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.http = httpClient
	}
}

// New creates an HTTP backed Fetcher.
func New(opts ...Option) Fetcher {
	c := &client{
		http: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *client) Fetch(ctx context.Context, url, dest string, headers map[string]string) bool {
	if err := c.download(ctx, url, dest, headers); err != nil {
		logging.From(ctx).Warn("failed to download asset",
			"url", url,
			"dest", dest,
			logging.ErrAttr(err),
		)
		return false
	}

	return true
}

func (c *client) download(ctx context.Context, url, dest string, headers map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create asset directory", goerr.V("dest", dest))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build asset request", goerr.V("url", url))
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to request asset", goerr.V("url", url))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return goerr.New("unexpected status code", goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	out, err := os.Create(dest)
	if err != nil {
		return goerr.Wrap(err, "failed to create asset file", goerr.V("dest", dest))
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return goerr.Wrap(err, "failed to write asset file", goerr.V("dest", dest))
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return goerr.Wrap(err, "failed to close asset file", goerr.V("dest", dest))
	}

	return nil
}
