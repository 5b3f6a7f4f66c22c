package discord

import (
	"sync"

	"github.com/redbayou/outpost/internal/services/economy"
)

// maxSnapshots caps how many leaderboard snapshots are kept for pagination
const maxSnapshots = 64

// snapshotStore keeps the full ordering captured when /leaderboard ran, so
// page buttons walk a stable ranking instead of re-scanning a moving ledger
type snapshotStore struct {
	mu    sync.Mutex
	snaps map[string][]economy.LeaderboardEntry
	order []string
}

func newSnapshotStore() *snapshotStore {
	return &snapshotStore{
		snaps: make(map[string][]economy.LeaderboardEntry),
	}
}

// Put stores a snapshot under id, evicting the oldest when over the cap
func (s *snapshotStore) Put(id string, entries []economy.LeaderboardEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snaps[id]; !ok {
		s.order = append(s.order, id)
	}
	s.snaps[id] = entries

	for len(s.order) > maxSnapshots {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.snaps, oldest)
	}
}

// Get returns the snapshot for id, false when it has been evicted
func (s *snapshotStore) Get(id string) ([]economy.LeaderboardEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.snaps[id]
	return entries, ok
}
