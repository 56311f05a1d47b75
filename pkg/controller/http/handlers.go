package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
	"github.com/markclong/slack-archiver/pkg/utils/errutil"
)

// messageResponse is the JSON shape shared by the message page and
// thread endpoints.
type messageResponse struct {
	TS         string             `json:"ts"`
	Time       string             `json:"time"`
	Text       string             `json:"text"`
	ThreadTS   string             `json:"thread_ts,omitempty"`
	ReplyCount int                `json:"reply_count,omitempty"`
	Author     *authorResponse    `json:"author"`
	Reactions  []reactionResponse `json:"reactions,omitempty"`
	Files      []fileResponse     `json:"files,omitempty"`
}

type authorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	AvatarLocal string `json:"avatar_local,omitempty"`
}

type reactionResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type fileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Mimetype  string `json:"mimetype,omitempty"`
	URL       string `json:"url,omitempty"`
	LocalPath string `json:"local_path,omitempty"`
}

func (s *Server) workspaceHandler() http.HandlerFunc {
	type response struct {
		WorkspaceURL string `json:"workspace_url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		url, err := s.repo.Config().Get(r.Context(), model.ConfigKeyWorkspaceURL)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to load workspace URL"), http.StatusInternalServerError)
			return
		}

		writeJSON(w, r, response{WorkspaceURL: url})
	}
}

func (s *Server) channelsHandler() http.HandlerFunc {
	type channelResponse struct {
		Channel   string `json:"channel"`
		ChannelID string `json:"channel_id,omitempty"`
		OldestTS  string `json:"oldest_ts"`
		NewestTS  string `json:"newest_ts"`
		Messages  int    `json:"messages"`
	}
	type response struct {
		Channels []channelResponse `json:"channels"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		states, err := s.repo.SyncState().List(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to list channels"), http.StatusInternalServerError)
			return
		}

		resp := response{Channels: make([]channelResponse, 0, len(states))}
		for _, state := range states {
			count, err := s.repo.Message().Count(r.Context(), state.Channel)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to count messages", goerr.V("channel", state.Channel)), http.StatusInternalServerError)
				return
			}

			resp.Channels = append(resp.Channels, channelResponse{
				Channel:   state.Channel,
				ChannelID: state.ChannelID.String(),
				OldestTS:  state.OldestTS.String(),
				NewestTS:  state.NewestTS.String(),
				Messages:  count,
			})
		}

		writeJSON(w, r, resp)
	}
}

func (s *Server) messagesHandler() http.HandlerFunc {
	type response struct {
		Channel  string            `json:"channel"`
		Messages []messageResponse `json:"messages"`
		HasMore  bool              `json:"has_more"`
		OldestTS string            `json:"oldest_ts,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		channel := chi.URLParam(r, "channel")

		before := types.MessageTS(r.URL.Query().Get("before"))
		if before != "" {
			if err := before.Validate(); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid before parameter"), http.StatusBadRequest)
				return
			}
		}

		limit := s.pageSize
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				errutil.HandleHTTP(ctx, w, goerr.New("invalid limit parameter", goerr.V("limit", raw)), http.StatusBadRequest)
				return
			}
			limit = n
		}

		msgs, err := s.repo.Message().ListTopLevel(ctx, channel, before, limit)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to list messages", goerr.V("channel", channel)), http.StatusInternalServerError)
			return
		}

		users, err := s.userIndex(ctx)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		resp := response{Channel: channel, Messages: make([]messageResponse, 0, len(msgs))}
		for _, msg := range msgs {
			rendered, err := s.renderMessage(ctx, msg, users)
			if err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
				return
			}
			resp.Messages = append(resp.Messages, *rendered)
		}

		if len(msgs) > 0 {
			resp.OldestTS = msgs[0].TS.String()

			older, err := s.repo.Message().ListTopLevel(ctx, channel, msgs[0].TS, 1)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to probe older messages", goerr.V("channel", channel)), http.StatusInternalServerError)
				return
			}
			resp.HasMore = len(older) > 0
		}

		writeJSON(w, r, resp)
	}
}

func (s *Server) threadHandler() http.HandlerFunc {
	type response struct {
		Parent  messageResponse   `json:"parent"`
		Replies []messageResponse `json:"replies"`
		Count   int               `json:"count"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ts := types.MessageTS(chi.URLParam(r, "ts"))
		if err := ts.Validate(); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid thread timestamp"), http.StatusBadRequest)
			return
		}

		parent, err := s.repo.Message().Get(ctx, ts)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to load thread parent", goerr.V("ts", ts)), http.StatusInternalServerError)
			return
		}
		if parent == nil {
			errutil.HandleHTTP(ctx, w, goerr.New("thread not found", goerr.V("ts", ts)), http.StatusNotFound)
			return
		}

		replies, err := s.repo.Message().ListThread(ctx, ts)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to list thread replies", goerr.V("ts", ts)), http.StatusInternalServerError)
			return
		}

		users, err := s.userIndex(ctx)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		renderedParent, err := s.renderMessage(ctx, parent, users)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		resp := response{
			Parent:  *renderedParent,
			Replies: make([]messageResponse, 0, len(replies)),
			Count:   len(replies),
		}
		for _, reply := range replies {
			rendered, err := s.renderMessage(ctx, reply, users)
			if err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
				return
			}
			resp.Replies = append(resp.Replies, *rendered)
		}

		writeJSON(w, r, resp)
	}
}

func (s *Server) usersHandler() http.HandlerFunc {
	type userResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url,omitempty"`
		AvatarLocal string `json:"avatar_local,omitempty"`
	}
	type response struct {
		Users []userResponse `json:"users"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.repo.User().List(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to list users"), http.StatusInternalServerError)
			return
		}

		resp := response{Users: make([]userResponse, 0, len(users))}
		for _, u := range users {
			resp.Users = append(resp.Users, userResponse{
				ID:          u.ID.String(),
				Name:        u.Name,
				DisplayName: u.DisplayName,
				AvatarURL:   u.AvatarURL,
				AvatarLocal: u.AvatarLocal,
			})
		}

		writeJSON(w, r, resp)
	}
}

func (s *Server) emojiHandler() http.HandlerFunc {
	type emojiResponse struct {
		Name      string `json:"name"`
		URL       string `json:"url,omitempty"`
		LocalPath string `json:"local_path,omitempty"`
		AliasOf   string `json:"alias_of,omitempty"`
	}
	type response struct {
		Emoji []emojiResponse `json:"emoji"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		emojis, err := s.repo.Emoji().List(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to list emoji"), http.StatusInternalServerError)
			return
		}

		resp := response{Emoji: make([]emojiResponse, 0, len(emojis))}
		for _, e := range emojis {
			entry := emojiResponse{
				Name:      e.Name.String(),
				LocalPath: e.LocalPath,
			}
			if e.IsAlias() {
				entry.AliasOf = e.AliasTarget()
			} else {
				entry.URL = e.URL
			}
			resp.Emoji = append(resp.Emoji, entry)
		}

		writeJSON(w, r, resp)
	}
}

// userIndex loads the user directory keyed by ID for author joins.
func (s *Server) userIndex(ctx context.Context) (map[types.UserID]*model.User, error) {
	users, err := s.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load user directory")
	}

	index := make(map[types.UserID]*model.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}

	return index, nil
}

// renderMessage joins one stored message with its author, reaction
// summaries and files.
func (s *Server) renderMessage(ctx context.Context, msg *model.Message, users map[types.UserID]*model.User) (*messageResponse, error) {
	out := &messageResponse{
		TS:         msg.TS.String(),
		Time:       msg.TS.Time().Format(time.RFC3339),
		Text:       msg.Text,
		ThreadTS:   msg.ThreadTS.String(),
		ReplyCount: msg.ReplyCount,
	}

	if author, ok := users[msg.AuthorID]; ok {
		out.Author = &authorResponse{
			ID:          author.ID.String(),
			Name:        author.Name,
			DisplayName: author.DisplayName,
			AvatarLocal: author.AvatarLocal,
		}
	}

	reactions, err := s.repo.Message().Reactions(ctx, msg.TS)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load reactions", goerr.V("ts", msg.TS))
	}
	for _, reaction := range reactions {
		out.Reactions = append(out.Reactions, reactionResponse{
			Name:  reaction.Name,
			Count: len(reaction.UserIDs),
		})
	}

	files, err := s.repo.Message().Files(ctx, msg.TS)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load files", goerr.V("ts", msg.TS))
	}
	for _, file := range files {
		out.Files = append(out.Files, fileResponse{
			ID:        file.ID.String(),
			Name:      file.Name,
			Mimetype:  file.Mimetype,
			URL:       file.URL,
			LocalPath: file.LocalPath,
		})
	}

	return out, nil
}
