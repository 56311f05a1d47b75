package memory

import (
	"context"
	"sort"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

type emojiRepository struct {
	m *Memory
}

func (x *emojiRepository) SaveMany(ctx context.Context, emojis []*model.Emoji) error {
	x.m.mu.Lock()
	defer x.m.mu.Unlock()

	for _, e := range emojis {
		cp := *e
		x.m.st.emojis[e.Name] = &cp
	}
	return nil
}

func (x *emojiRepository) Get(ctx context.Context, name types.EmojiName) (*model.Emoji, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	e, ok := x.m.st.emojis[name]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (x *emojiRepository) List(ctx context.Context) ([]*model.Emoji, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	emojis := make([]*model.Emoji, 0, len(x.m.st.emojis))
	for _, e := range x.m.st.emojis {
		cp := *e
		emojis = append(emojis, &cp)
	}
	sort.Slice(emojis, func(i, j int) bool { return emojis[i].Name < emojis[j].Name })
	return emojis, nil
}
