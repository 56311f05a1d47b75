package memory

import (
	"context"
	"sort"

	"github.com/markclong/slack-archiver/pkg/domain/model"
)

type syncStateRepository struct {
	m *Memory
}

func (x *syncStateRepository) Get(ctx context.Context, channel string) (*model.SyncState, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	st, ok := x.m.st.syncStates[channel]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (x *syncStateRepository) Put(ctx context.Context, state *model.SyncState) error {
	x.m.mu.Lock()
	defer x.m.mu.Unlock()

	cp := *state
	if cp.ChannelID == "" {
		if prior, ok := x.m.st.syncStates[state.Channel]; ok {
			cp.ChannelID = prior.ChannelID
		}
	}
	x.m.st.syncStates[state.Channel] = &cp
	return nil
}

func (x *syncStateRepository) List(ctx context.Context) ([]*model.SyncState, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	states := make([]*model.SyncState, 0, len(x.m.st.syncStates))
	for _, st := range x.m.st.syncStates {
		cp := *st
		states = append(states, &cp)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Channel < states[j].Channel })
	return states, nil
}
