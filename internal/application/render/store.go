package render

import "sync"

// DocumentStore is a single-slot cache of the most recently rendered
// document. Concurrent renders race without coordination; the last Put wins.
type DocumentStore struct {
	mu     sync.RWMutex
	latest []byte
}

// NewDocumentStore builds an empty store.
func NewDocumentStore() *DocumentStore { return &DocumentStore{} }

// Put publishes doc as the latest rendered document.
func (s *DocumentStore) Put(doc []byte) {
	s.mu.Lock()
	s.latest = doc
	s.mu.Unlock()
}

// Latest returns the most recently published document, if any.
func (s *DocumentStore) Latest() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, false
	}
	return s.latest, true
}
