package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/markclong/slack-archiver/pkg/domain/types"
	"github.com/markclong/slack-archiver/pkg/repository/memory"
	"github.com/markclong/slack-archiver/pkg/service/slack"
	"github.com/markclong/slack-archiver/pkg/service/storage"
	"github.com/markclong/slack-archiver/pkg/usecase"
	"github.com/markclong/slack-archiver/pkg/utils/logging"
	"github.com/neilotoole/slogt"
)

// testCtx routes engine logs through t.Log so failures show the phase
// warnings that preceded them.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	return logging.With(context.Background(), slogt.New(t))
}

// mockSlackService is a mock implementation of slack.Service for testing
type mockSlackService struct {
	authInfoFn    func(ctx context.Context) (*slack.AuthInfo, error)
	findChannelFn func(ctx context.Context, name string) (types.ChannelID, error)
	listUsersFn   func(ctx context.Context) ([]slack.User, error)
	listEmojiFn   func(ctx context.Context) (map[string]string, error)
	historyFn     func(ctx context.Context, req slack.HistoryRequest) (*slack.HistoryPage, error)
	repliesFn     func(ctx context.Context, req slack.RepliesRequest) (*slack.HistoryPage, error)

	historyCalls []slack.HistoryRequest
	repliesCalls []slack.RepliesRequest
}

func (m *mockSlackService) AuthInfo(ctx context.Context) (*slack.AuthInfo, error) {
	if m.authInfoFn != nil {
		return m.authInfoFn(ctx)
	}
	return &slack.AuthInfo{
		URL:    "https://example.slack.com/",
		Team:   "example",
		TeamID: "T001",
	}, nil
}

func (m *mockSlackService) FindChannel(ctx context.Context, name string) (types.ChannelID, error) {
	if m.findChannelFn != nil {
		return m.findChannelFn(ctx, name)
	}
	return "C001", nil
}

func (m *mockSlackService) ListUsers(ctx context.Context) ([]slack.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockSlackService) ListEmoji(ctx context.Context) (map[string]string, error) {
	if m.listEmojiFn != nil {
		return m.listEmojiFn(ctx)
	}
	return map[string]string{}, nil
}

func (m *mockSlackService) History(ctx context.Context, req slack.HistoryRequest) (*slack.HistoryPage, error) {
	m.historyCalls = append(m.historyCalls, req)
	if m.historyFn != nil {
		return m.historyFn(ctx, req)
	}
	return &slack.HistoryPage{}, nil
}

func (m *mockSlackService) Replies(ctx context.Context, req slack.RepliesRequest) (*slack.HistoryPage, error) {
	m.repliesCalls = append(m.repliesCalls, req)
	if m.repliesFn != nil {
		return m.repliesFn(ctx, req)
	}
	return &slack.HistoryPage{}, nil
}

type fetchCall struct {
	url     string
	dest    string
	headers map[string]string
}

// mockFetcher records downloads and writes a stub file so that
// existence checks behave like after a real download.
type mockFetcher struct {
	fetchFn func(ctx context.Context, url, dest string, headers map[string]string) bool
	calls   []fetchCall
}

func (m *mockFetcher) Fetch(ctx context.Context, url, dest string, headers map[string]string) bool {
	m.calls = append(m.calls, fetchCall{url: url, dest: dest, headers: headers})
	if m.fetchFn != nil {
		return m.fetchFn(ctx, url, dest, headers)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false
	}
	if err := os.WriteFile(dest, []byte("stub"), 0o644); err != nil {
		return false
	}
	return true
}

// newTestUseCases wires a memory repository, a temp data directory and
// the given mocks into a ready UseCases instance.
func newTestUseCases(t *testing.T, svc *mockSlackService, fetcher *mockFetcher) (*usecase.UseCases, *memory.Memory) {
	t.Helper()

	repo := memory.New()
	dir := storage.New(t.TempDir())
	gt.NoError(t, dir.Ensure()).Required()

	uc := usecase.New(repo, svc, dir, "general",
		usecase.WithFetcher(fetcher),
		usecase.WithFileToken("xoxp-test"),
	)

	return uc, repo
}
