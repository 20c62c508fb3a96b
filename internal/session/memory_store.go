package session

import "sync"

// MemorySelectionStore keeps selections in-process. Used by tests and
// local development without Redis.
type MemorySelectionStore struct {
	mu   sync.RWMutex
	sels map[string]Selection
}

// NewMemorySelectionStore initializes an empty selection store.
func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{sels: make(map[string]Selection)}
}

// Get resolves a session id to its stored selection.
func (m *MemorySelectionStore) Get(sessionID string) (Selection, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sel, ok := m.sels[sessionID]
	return sel, ok, nil
}

// Put writes a selection.
func (m *MemorySelectionStore) Put(sessionID string, sel Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sels[sessionID] = sel
	return nil
}

// Delete removes a session's selection.
func (m *MemorySelectionStore) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sels, sessionID)
	return nil
}
