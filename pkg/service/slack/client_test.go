package slack_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/markclong/slack-archiver/pkg/domain/types"
	"github.com/markclong/slack-archiver/pkg/service/slack"
	goslack "github.com/slack-go/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates service when token is provided", func(t *testing.T) {
		svc, err := slack.New("test-token")
		gt.NoError(t, err).Required()
		gt.Value(t, svc).NotNil()
	})
}

func TestConvertMessage(t *testing.T) {
	t.Run("maps the core fields", func(t *testing.T) {
		msg := slack.ConvertMessage(goslack.Message{Msg: goslack.Msg{
			Timestamp:       "1700000000.000100",
			User:            "U111",
			Text:            "hello",
			ThreadTimestamp: "1699999999.000050",
			ReplyCount:      3,
			SubType:         "channel_join",
		}})

		gt.Value(t, msg.TS).Equal(types.MessageTS("1700000000.000100"))
		gt.Value(t, msg.UserID).Equal(types.UserID("U111"))
		gt.Value(t, msg.Text).Equal("hello")
		gt.Value(t, msg.ThreadTS).Equal(types.MessageTS("1699999999.000050"))
		gt.Number(t, msg.ReplyCount).Equal(3)
		gt.Value(t, msg.SubType).Equal("channel_join")
	})

	t.Run("keeps reactions nil when the payload has none", func(t *testing.T) {
		msg := slack.ConvertMessage(goslack.Message{Msg: goslack.Msg{
			Timestamp: "1700000000.000100",
			User:      "U111",
		}})

		gt.Value(t, msg.Reactions).Nil()
	})

	t.Run("converts reactions with their users", func(t *testing.T) {
		msg := slack.ConvertMessage(goslack.Message{Msg: goslack.Msg{
			Timestamp: "1700000000.000100",
			User:      "U111",
			Reactions: []goslack.ItemReaction{
				{Name: "thumbsup", Count: 2, Users: []string{"U1", "U2"}},
			},
		}})

		gt.Array(t, msg.Reactions).Length(1)
		gt.Value(t, msg.Reactions[0].Name).Equal(types.EmojiName("thumbsup"))
		gt.Array(t, msg.Reactions[0].UserIDs).Length(2)
	})

	t.Run("converts files with URL and name fallbacks", func(t *testing.T) {
		msg := slack.ConvertMessage(goslack.Message{Msg: goslack.Msg{
			Timestamp: "1700000000.000100",
			User:      "U111",
			Files: []goslack.File{
				{ID: "F001", Name: "report.pdf", Mimetype: "application/pdf", URLPrivate: "https://files.example.com/report.pdf"},
				{ID: "F002", URLPrivateDownload: "https://files.example.com/download/F002"},
			},
		}})

		gt.Array(t, msg.Files).Length(2)
		gt.Value(t, msg.Files[0].Name).Equal("report.pdf")
		gt.Value(t, msg.Files[0].URL).Equal("https://files.example.com/report.pdf")
		gt.Value(t, msg.Files[1].Name).Equal("unknown")
		gt.Value(t, msg.Files[1].URL).Equal("https://files.example.com/download/F002")
	})
}

func TestConvertUser(t *testing.T) {
	user := slack.ConvertUser(goslack.User{
		ID:   "U111",
		Name: "alice",
		Profile: goslack.UserProfile{
			DisplayName: "alice-dev",
			RealName:    "Alice Example",
			Image72:     "https://avatars.example.com/U111_72.jpg",
		},
	})

	gt.Value(t, user.ID).Equal(types.UserID("U111"))
	gt.Value(t, user.Name).Equal("alice")
	gt.Value(t, user.DisplayName).Equal("alice-dev")
	gt.Value(t, user.RealName).Equal("Alice Example")
	gt.Value(t, user.AvatarURL).Equal("https://avatars.example.com/U111_72.jpg")
}

func TestIntegration(t *testing.T) {
	token := os.Getenv("TEST_SLACK_TOKEN")
	if token == "" {
		t.Skip("TEST_SLACK_TOKEN is not set")
	}

	ctx := context.Background()

	svc, err := slack.New(token)
	gt.NoError(t, err).Required()

	t.Run("AuthInfo returns the workspace URL", func(t *testing.T) {
		info, err := svc.AuthInfo(ctx)
		gt.NoError(t, err).Required()
		gt.String(t, info.URL).NotEqual("")
		t.Logf("Workspace: %s (%s)", info.Team, info.URL)
	})

	t.Run("ListUsers returns users", func(t *testing.T) {
		users, err := svc.ListUsers(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(users)).GreaterOrEqual(1)

		for _, u := range users {
			gt.String(t, u.ID.String()).NotEqual("")
		}
		t.Logf("Total users retrieved: %d", len(users))
	})

	t.Run("ListEmoji returns the emoji table", func(t *testing.T) {
		emoji, err := svc.ListEmoji(ctx)
		gt.NoError(t, err).Required()
		t.Logf("Total custom emoji: %d", len(emoji))
	})
}
