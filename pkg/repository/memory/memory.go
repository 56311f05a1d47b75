package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
	"github.com/markclong/slack-archiver/pkg/domain/model"
	"github.com/markclong/slack-archiver/pkg/domain/types"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory archive store used by tests. Like the engine
// itself it assumes a single writer; InTx isolation is snapshot/restore,
// not concurrent-safe serialization.
type Memory struct {
	mu sync.RWMutex
	st *state

	user      *userRepository
	emoji     *emojiRepository
	message   *messageRepository
	syncState *syncStateRepository
	config    *configRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	m := &Memory{st: newState()}
	m.user = &userRepository{m: m}
	m.emoji = &emojiRepository{m: m}
	m.message = &messageRepository{m: m}
	m.syncState = &syncStateRepository{m: m}
	m.config = &configRepository{m: m}
	return m
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Emoji() interfaces.EmojiRepository {
	return m.emoji
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.message
}

func (m *Memory) SyncState() interfaces.SyncStateRepository {
	return m.syncState
}

func (m *Memory) Config() interfaces.ConfigRepository {
	return m.config
}

func (m *Memory) Init(ctx context.Context) error {
	return nil
}

// InTx snapshots the store, runs fn against the same repository and
// restores the snapshot when fn fails.
func (m *Memory) InTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Repository) error) error {
	m.mu.Lock()
	snap := m.st.clone()
	m.mu.Unlock()

	if err := fn(ctx, m); err != nil {
		m.mu.Lock()
		m.st = snap
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

type state struct {
	users          map[types.UserID]*model.User
	emojis         map[types.EmojiName]*model.Emoji
	messages       map[types.MessageTS]*model.Message // row fields only, Reactions/Files kept aside
	reactions      map[types.MessageTS][]*model.Reaction
	files          map[types.FileID]*model.File
	syncStates     map[string]*model.SyncState
	config         map[string]string
	nextReactionID int64
}

func newState() *state {
	return &state{
		users:      map[types.UserID]*model.User{},
		emojis:     map[types.EmojiName]*model.Emoji{},
		messages:   map[types.MessageTS]*model.Message{},
		reactions:  map[types.MessageTS][]*model.Reaction{},
		files:      map[types.FileID]*model.File{},
		syncStates: map[string]*model.SyncState{},
		config:     map[string]string{},
	}
}

func (s *state) clone() *state {
	next := &state{
		users:          make(map[types.UserID]*model.User, len(s.users)),
		emojis:         make(map[types.EmojiName]*model.Emoji, len(s.emojis)),
		messages:       make(map[types.MessageTS]*model.Message, len(s.messages)),
		reactions:      make(map[types.MessageTS][]*model.Reaction, len(s.reactions)),
		files:          make(map[types.FileID]*model.File, len(s.files)),
		syncStates:     make(map[string]*model.SyncState, len(s.syncStates)),
		config:         make(map[string]string, len(s.config)),
		nextReactionID: s.nextReactionID,
	}
	for id, u := range s.users {
		cp := *u
		next.users[id] = &cp
	}
	for name, e := range s.emojis {
		cp := *e
		next.emojis[name] = &cp
	}
	for ts, msg := range s.messages {
		cp := *msg
		next.messages[ts] = &cp
	}
	for ts, rs := range s.reactions {
		cps := make([]*model.Reaction, len(rs))
		for i, r := range rs {
			cp := *r
			cp.UserIDs = slices.Clone(r.UserIDs)
			cps[i] = &cp
		}
		next.reactions[ts] = cps
	}
	for id, f := range s.files {
		cp := *f
		next.files[id] = &cp
	}
	for ch, st := range s.syncStates {
		cp := *st
		next.syncStates[ch] = &cp
	}
	for k, v := range s.config {
		next.config[k] = v
	}
	return next
}
