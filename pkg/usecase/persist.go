package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	slacksvc "github.com/markclong/slack-archiver/pkg/service/slack"
)

// saveMessage normalizes one remote message and upserts it with its
// reactions and file references through the given repository, which may
// be a transaction.
func (uc *UseCases) saveMessage(ctx context.Context, repo interfaces.Repository, msg slacksvc.Message) error {
	author := model.ResolveAuthor(msg.UserID, msg.BotID)

	// The replies endpoint reports the parent as its own thread root.
	threadTS := msg.ThreadTS
	if threadTS == msg.TS {
		threadTS = ""
	}

	out := &model.Message{
		TS:         msg.TS,
		Channel:    uc.channel,
		AuthorID:   author.ID(),
		Text:       msg.Text,
		ThreadTS:   threadTS,
		ReplyCount: msg.ReplyCount,
	}

	if msg.Reactions != nil {
		out.Reactions = make([]model.Reaction, 0, len(msg.Reactions))
		for _, r := range msg.Reactions {
			out.Reactions = append(out.Reactions, model.Reaction{
				MessageTS: msg.TS,
				Name:      r.Name.String(),
				UserIDs:   r.UserIDs,
			})
		}
	}

	for _, f := range msg.Files {
		file := model.File{
			ID:        f.ID,
			MessageTS: msg.TS,
			Name:      f.Name,
			Mimetype:  f.Mimetype,
			URL:       f.URL,
		}

		if f.URL != "" {
			dest, rel := uc.dir.Attachment(f.ID, f.Name)
			if uc.fetchIfAbsent(ctx, f.URL, dest, uc.fileHeaders()) {
				file.LocalPath = rel
			}
		}

		out.Files = append(out.Files, file)
	}

	if err := repo.Message().Save(ctx, out); err != nil {
		return goerr.Wrap(err, "failed to save message", goerr.V("ts", msg.TS))
	}

	return nil
}

// fileHeaders returns the authorization header for private file
// downloads, nil when no token is configured.
func (uc *UseCases) fileHeaders() map[string]string {
	if uc.fileToken == "" {
		return nil
	}

	return map[string]string{"Authorization": "Bearer " + uc.fileToken}
}
