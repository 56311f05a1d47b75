package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/service/slack"
)

func TestSyncUsers(t *testing.T) {
	ctx := testCtx(t)

	t.Run("stores users with preferred display names", func(t *testing.T) {
		svc := &mockSlackService{
			listUsersFn: func(ctx context.Context) ([]slack.User, error) {
				return []slack.User{
					{ID: "U001", Name: "alice", DisplayName: "Alice", RealName: "Alice Example", AvatarURL: "https://avatars.example.com/U001.jpg"},
					{ID: "U002", Name: "bob", RealName: "Bob Example"},
					{ID: "U003", Name: "deploybot"},
				}, nil
			},
		}
		uc, repo := newTestUseCases(t, svc, &mockFetcher{})

		gt.NoError(t, uc.SyncUsers(ctx)).Required()

		users, err := repo.User().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(3).Required()
		gt.Value(t, users[0].DisplayName).Equal("Alice")
		gt.Value(t, users[1].DisplayName).Equal("Bob Example")
		gt.Value(t, users[2].DisplayName).Equal("deploybot")
	})

	t.Run("downloads avatars once", func(t *testing.T) {
		svc := &mockSlackService{
			listUsersFn: func(ctx context.Context) ([]slack.User, error) {
				return []slack.User{
					{ID: "U001", Name: "alice", AvatarURL: "https://avatars.example.com/U001.jpg"},
				}, nil
			},
		}
		fetcher := &mockFetcher{}
		uc, repo := newTestUseCases(t, svc, fetcher)

		gt.NoError(t, uc.SyncUsers(ctx)).Required()
		gt.NoError(t, uc.SyncUsers(ctx)).Required()

		gt.Array(t, fetcher.calls).Length(1).Required()
		gt.Value(t, fetcher.calls[0].url).Equal("https://avatars.example.com/U001.jpg")

		user, err := repo.User().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, user).NotNil().Required()
		gt.Value(t, user.AvatarLocal).Equal("avatars/U001.jpg")
	})

	t.Run("skips avatar download for users without one", func(t *testing.T) {
		svc := &mockSlackService{
			listUsersFn: func(ctx context.Context) ([]slack.User, error) {
				return []slack.User{{ID: "U001", Name: "alice"}}, nil
			},
		}
		fetcher := &mockFetcher{}
		uc, repo := newTestUseCases(t, svc, fetcher)

		gt.NoError(t, uc.SyncUsers(ctx)).Required()

		gt.Array(t, fetcher.calls).Length(0)

		user, err := repo.User().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, user).NotNil().Required()
		gt.Value(t, user.AvatarLocal).Equal("")
	})

	t.Run("stores the user even when the download fails", func(t *testing.T) {
		svc := &mockSlackService{
			listUsersFn: func(ctx context.Context) ([]slack.User, error) {
				return []slack.User{
					{ID: "U001", Name: "alice", AvatarURL: "https://avatars.example.com/U001.jpg"},
				}, nil
			},
		}
		fetcher := &mockFetcher{
			fetchFn: func(ctx context.Context, url, dest string, headers map[string]string) bool {
				return false
			},
		}
		uc, repo := newTestUseCases(t, svc, fetcher)

		gt.NoError(t, uc.SyncUsers(ctx)).Required()

		user, err := repo.User().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, user).NotNil().Required()
		gt.Value(t, user.AvatarURL).Equal("https://avatars.example.com/U001.jpg")
		gt.Value(t, user.AvatarLocal).Equal("")
	})

	t.Run("keeps existing users when the API fails", func(t *testing.T) {
		svc := &mockSlackService{
			listUsersFn: func(ctx context.Context) ([]slack.User, error) {
				return nil, context.DeadlineExceeded
			},
		}
		uc, repo := newTestUseCases(t, svc, &mockFetcher{})

		gt.NoError(t, repo.User().SaveMany(ctx, []*model.User{
			{ID: "U001", Name: "alice", DisplayName: "Alice"},
		})).Required()

		gt.NoError(t, uc.SyncUsers(ctx)).Required()

		users, err := repo.User().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(1)
	})
}

func TestSyncEmoji(t *testing.T) {
	ctx := testCtx(t)

	t.Run("downloads images and stores paths", func(t *testing.T) {
		svc := &mockSlackService{
			listEmojiFn: func(ctx context.Context) (map[string]string, error) {
				return map[string]string{
					"party": "https://emoji.example.com/party.gif",
				}, nil
			},
		}
		fetcher := &mockFetcher{}
		uc, repo := newTestUseCases(t, svc, fetcher)

		gt.NoError(t, uc.SyncEmoji(ctx)).Required()

		gt.Array(t, fetcher.calls).Length(1).Required()
		gt.Value(t, fetcher.calls[0].url).Equal("https://emoji.example.com/party.gif")

		emoji, err := repo.Emoji().Get(ctx, "party")
		gt.NoError(t, err).Required()
		gt.Value(t, emoji).NotNil().Required()
		gt.Value(t, emoji.LocalPath).Equal("emojis/party.gif")
	})

	t.Run("never downloads alias entries", func(t *testing.T) {
		svc := &mockSlackService{
			listEmojiFn: func(ctx context.Context) (map[string]string, error) {
				return map[string]string{
					"thumbsup-alias": "alias:thumbsup",
				}, nil
			},
		}
		fetcher := &mockFetcher{}
		uc, repo := newTestUseCases(t, svc, fetcher)

		gt.NoError(t, uc.SyncEmoji(ctx)).Required()

		gt.Array(t, fetcher.calls).Length(0)

		emoji, err := repo.Emoji().Get(ctx, "thumbsup-alias")
		gt.NoError(t, err).Required()
		gt.Value(t, emoji).NotNil().Required()
		gt.Value(t, emoji.URL).Equal("alias:thumbsup")
		gt.Value(t, emoji.LocalPath).Equal("")
		gt.Value(t, emoji.AliasTarget()).Equal("thumbsup")
	})

	t.Run("keeps existing emoji when the API fails", func(t *testing.T) {
		svc := &mockSlackService{
			listEmojiFn: func(ctx context.Context) (map[string]string, error) {
				return nil, context.DeadlineExceeded
			},
		}
		uc, repo := newTestUseCases(t, svc, &mockFetcher{})

		gt.NoError(t, repo.Emoji().SaveMany(ctx, []*model.Emoji{
			{Name: "party", URL: "https://emoji.example.com/party.gif"},
		})).Required()

		gt.NoError(t, uc.SyncEmoji(ctx)).Required()

		emojis, err := repo.Emoji().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, emojis).Length(1)
	})
}
