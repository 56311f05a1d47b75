package memory

import (
	"context"
	"sort"

	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

type userRepository struct {
	m *Memory
}

func (x *userRepository) SaveMany(ctx context.Context, users []*model.User) error {
	x.m.mu.Lock()
	defer x.m.mu.Unlock()

	for _, u := range users {
		cp := *u
		x.m.st.users[u.ID] = &cp
	}
	return nil
}

func (x *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	u, ok := x.m.st.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (x *userRepository) List(ctx context.Context) ([]*model.User, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	users := make([]*model.User, 0, len(x.m.st.users))
	for _, u := range x.m.st.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
