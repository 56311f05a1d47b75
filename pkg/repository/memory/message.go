package memory

import (
	"context"
	"sort"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

type messageRepository struct {
	m *Memory
}

func (x *messageRepository) Save(ctx context.Context, msg *model.Message) error {
	x.m.mu.Lock()
	defer x.m.mu.Unlock()

	row := *msg
	row.Reactions = nil
	row.Files = nil
	x.m.st.messages[msg.TS] = &row

	if msg.Reactions != nil {
		delete(x.m.st.reactions, msg.TS)
		if len(msg.Reactions) > 0 {
			rows := make([]*model.Reaction, 0, len(msg.Reactions))
			for i := range msg.Reactions {
				cp := msg.Reactions[i]
				x.m.st.nextReactionID++
				cp.ID = x.m.st.nextReactionID
				cp.MessageTS = msg.TS
				cp.UserIDs = append([]types.UserID(nil), cp.UserIDs...)
				rows = append(rows, &cp)
			}
			x.m.st.reactions[msg.TS] = rows
		}
	}

	for i := range msg.Files {
		cp := msg.Files[i]
		cp.MessageTS = msg.TS
		x.m.st.files[cp.ID] = &cp
	}

	return nil
}

func (x *messageRepository) Get(ctx context.Context, ts types.MessageTS) (*model.Message, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	msg, ok := x.m.st.messages[ts]
	if !ok {
		return nil, nil
	}
	cp := *msg
	return &cp, nil
}

func (x *messageRepository) ListTopLevel(ctx context.Context, channel string, before types.MessageTS, limit int) ([]*model.Message, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	var msgs []*model.Message
	for _, msg := range x.m.st.messages {
		if msg.Channel != channel || msg.IsThreadReply() {
			continue
		}
		if !before.IsZero() && !msg.TS.Before(before) {
			continue
		}
		cp := *msg
		msgs = append(msgs, &cp)
	}
	// Newest page wins, then oldest first within the page.
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].TS.After(msgs[j].TS) })
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].TS.Before(msgs[j].TS) })
	return msgs, nil
}

func (x *messageRepository) ListThread(ctx context.Context, threadTS types.MessageTS) ([]*model.Message, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	var msgs []*model.Message
	for _, msg := range x.m.st.messages {
		if msg.ThreadTS != threadTS {
			continue
		}
		cp := *msg
		msgs = append(msgs, &cp)
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].TS.Before(msgs[j].TS) })
	return msgs, nil
}

func (x *messageRepository) Reactions(ctx context.Context, ts types.MessageTS) ([]*model.Reaction, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	rows := x.m.st.reactions[ts]
	reactions := make([]*model.Reaction, 0, len(rows))
	for _, r := range rows {
		cp := *r
		cp.UserIDs = append([]types.UserID(nil), r.UserIDs...)
		reactions = append(reactions, &cp)
	}
	sort.Slice(reactions, func(i, j int) bool { return reactions[i].ID < reactions[j].ID })
	return reactions, nil
}

func (x *messageRepository) Files(ctx context.Context, ts types.MessageTS) ([]*model.File, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	var files []*model.File
	for _, f := range x.m.st.files {
		if f.MessageTS != ts {
			continue
		}
		cp := *f
		files = append(files, &cp)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

func (x *messageRepository) Count(ctx context.Context, channel string) (int, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	count := 0
	for _, msg := range x.m.st.messages {
		if msg.Channel == channel {
			count++
		}
	}
	return count, nil
}
