package memory

import "context"

type configRepository struct {
	m *Memory
}

func (x *configRepository) Set(ctx context.Context, key, value string) error {
	x.m.mu.Lock()
	defer x.m.mu.Unlock()

	x.m.st.config[key] = value
	return nil
}

func (x *configRepository) Get(ctx context.Context, key string) (string, error) {
	x.m.mu.RLock()
	defer x.m.mu.RUnlock()

	return x.m.st.config[key], nil
}
