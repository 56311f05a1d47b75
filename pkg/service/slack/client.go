package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/types"
	"github.com/slack-go/slack"
)

// DefaultPageLimit is the page size requested from paginated endpoints.
const DefaultPageLimit = 200

// client implements Service on the Slack Web API
type client struct {
	api       *slack.Client
	pageLimit int
}

// Option is a functional option for client configuration
type Option func(*client)

// WithPageLimit sets the page size for paginated endpoints.
func WithPageLimit(limit int) Option {
	return func(c *client) {
		c.pageLimit = limit
	}
}

// New creates a new Slack service with the provided token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack token is required")
	}

	c := &client{
		api:       slack.New(token),
		pageLimit: DefaultPageLimit,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AuthInfo identifies the workspace the configured token belongs to
func (c *client) AuthInfo(ctx context.Context) (*AuthInfo, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call auth.test")
	}

	return &AuthInfo{
		URL:    resp.URL,
		Team:   resp.Team,
		TeamID: resp.TeamID,
	}, nil
}

// FindChannel resolves a channel name to its ID
func (c *client) FindChannel(ctx context.Context, name string) (types.ChannelID, error) {
	var cursor string

	for {
		channels, nextCursor, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Types:  []string{"public_channel", "private_channel"},
			Limit:  c.pageLimit,
			Cursor: cursor,
		})
		if err != nil {
			return "", goerr.Wrap(err, "failed to list conversations", goerr.V("channel", name))
		}

		for _, ch := range channels {
			if ch.Name == name {
				return types.ChannelID(ch.ID), nil
			}
		}

		if nextCursor == "" {
			return "", goerr.Wrap(ErrChannelNotFound, "channel not found", goerr.V("channel", name))
		}
		cursor = nextCursor
	}
}

// ListUsers retrieves every member of the workspace
func (c *client) ListUsers(ctx context.Context) ([]User, error) {
	users, err := c.api.GetUsersContext(ctx, slack.GetUsersOptionLimit(c.pageLimit))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}

	result := make([]User, 0, len(users))
	for _, u := range users {
		result = append(result, convertUser(u))
	}

	return result, nil
}

// ListEmoji retrieves the custom emoji table
func (c *client) ListEmoji(ctx context.Context) (map[string]string, error) {
	emoji, err := c.api.GetEmojiContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list emoji")
	}

	return emoji, nil
}

// History fetches one page of channel history
func (c *client) History(ctx context.Context, req HistoryRequest) (*HistoryPage, error) {
	limit := req.Limit
	if limit == 0 {
		limit = c.pageLimit
	}

	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: req.ChannelID.String(),
		Oldest:    req.Oldest.String(),
		Cursor:    req.Cursor,
		Limit:     limit,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get conversation history",
			goerr.V("channel_id", req.ChannelID), goerr.V("cursor", req.Cursor))
	}

	page := &HistoryPage{
		Messages:   make([]Message, 0, len(resp.Messages)),
		NextCursor: resp.ResponseMetaData.NextCursor,
	}
	for _, msg := range resp.Messages {
		page.Messages = append(page.Messages, convertMessage(msg))
	}

	return page, nil
}

// Replies fetches one page of a thread
func (c *client) Replies(ctx context.Context, req RepliesRequest) (*HistoryPage, error) {
	limit := req.Limit
	if limit == 0 {
		limit = c.pageLimit
	}

	msgs, _, nextCursor, err := c.api.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: req.ChannelID.String(),
		Timestamp: req.ThreadTS.String(),
		Cursor:    req.Cursor,
		Limit:     limit,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get conversation replies",
			goerr.V("channel_id", req.ChannelID), goerr.V("thread_ts", req.ThreadTS))
	}

	page := &HistoryPage{
		Messages:   make([]Message, 0, len(msgs)),
		NextCursor: nextCursor,
	}
	for _, msg := range msgs {
		page.Messages = append(page.Messages, convertMessage(msg))
	}

	return page, nil
}

func convertMessage(msg slack.Message) Message {
	out := Message{
		TS:         types.MessageTS(msg.Timestamp),
		UserID:     types.UserID(msg.User),
		BotID:      types.UserID(msg.BotID),
		Text:       msg.Text,
		ThreadTS:   types.MessageTS(msg.ThreadTimestamp),
		ReplyCount: msg.ReplyCount,
		SubType:    msg.SubType,
	}

	if msg.Reactions != nil {
		out.Reactions = make([]Reaction, 0, len(msg.Reactions))
		for _, r := range msg.Reactions {
			userIDs := make([]types.UserID, 0, len(r.Users))
			for _, u := range r.Users {
				userIDs = append(userIDs, types.UserID(u))
			}
			out.Reactions = append(out.Reactions, Reaction{
				Name:    types.EmojiName(r.Name),
				UserIDs: userIDs,
			})
		}
	}

	for _, f := range msg.Files {
		out.Files = append(out.Files, convertFile(f))
	}

	return out
}

func convertFile(f slack.File) File {
	name := f.Name
	if name == "" {
		name = "unknown"
	}

	url := f.URLPrivate
	if url == "" {
		url = f.URLPrivateDownload
	}

	return File{
		ID:       types.FileID(f.ID),
		Name:     name,
		Mimetype: f.Mimetype,
		URL:      url,
	}
}

func convertUser(u slack.User) User {
	return User{
		ID:          types.UserID(u.ID),
		Name:        u.Name,
		DisplayName: u.Profile.DisplayName,
		RealName:    u.Profile.RealName,
		AvatarURL:   u.Profile.Image72,
	}
}
