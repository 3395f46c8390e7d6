package sequencer

import (
	"context"
	"sync"
	"time"
)

// DefaultTargetTTL is how long a target outlives its deadline when the
// visitor never completes the animation.
const DefaultTargetTTL = 10 * time.Minute

// sweepThreshold is the store size above which Save drops expired targets.
const sweepThreshold = 1024

// TargetStore keeps pending link targets on the server, keyed by session id,
// so the session cookie only carries the deadline.
type TargetStore interface {
	Save(ctx context.Context, id, url string, now time.Time, ttl time.Duration) error
	Load(ctx context.Context, id string, now time.Time) (string, bool, error)
	Release(ctx context.Context, id string) error
}

type targetRecord struct {
	URL       string
	ExpiresAt time.Time
}

// MemoryStore is a process-local TargetStore.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]targetRecord
}

// NewMemoryStore constructs an empty memory-backed target store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]targetRecord)}
}

// Save implements TargetStore. A non-positive ttl uses DefaultTargetTTL.
func (s *MemoryStore) Save(_ context.Context, id, url string, now time.Time, ttl time.Duration) error {
	now = now.UTC()
	if ttl <= 0 {
		ttl = DefaultTargetTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) >= sweepThreshold {
		s.sweepLocked(now)
	}
	s.records[id] = targetRecord{URL: url, ExpiresAt: now.Add(ttl)}
	return nil
}

// Load implements TargetStore. Expired targets are reported missing.
func (s *MemoryStore) Load(_ context.Context, id string, now time.Time) (string, bool, error) {
	now = now.UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return "", false, nil
	}
	if !now.Before(rec.ExpiresAt) {
		delete(s.records, id)
		return "", false, nil
	}
	return rec.URL, true, nil
}

// Release implements TargetStore.
func (s *MemoryStore) Release(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for id, rec := range s.records {
		if !now.Before(rec.ExpiresAt) {
			delete(s.records, id)
		}
	}
}
