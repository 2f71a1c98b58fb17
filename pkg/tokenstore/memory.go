package tokenstore

import "sync"

// Memory is an in-process Store. It is the default for tests and for
// callers that do not want credentials to outlive the process.
type Memory struct {
	mu       sync.Mutex
	token    string
	hasToken bool
	snapshot []byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.hasToken
}

func (m *Memory) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.hasToken = true
	return nil
}

func (m *Memory) Snapshot() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil, false
	}
	out := make([]byte, len(m.snapshot))
	copy(out, m.snapshot)
	return out, true
}

func (m *Memory) SetSnapshot(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = make([]byte, len(data))
	copy(m.snapshot, data)
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.hasToken = false
	m.snapshot = nil
	return nil
}

var _ Store = (*Memory)(nil)
