package store

import (
	"sync"

	"nexopoly/platform/engine"
)

// MemoryStore mirrors RedisStore's semantics (versioned CAS, change
// signals) without the network. Tests and single-process setups use it.
type MemoryStore struct {
	mu    sync.Mutex
	games map[string]*engine.Snapshot
	subs  map[string][]*memorySubscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*engine.Snapshot),
		subs:  make(map[string][]*memorySubscription),
	}
}

func (s *MemoryStore) Create(g *engine.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[g.LobbyID]; ok {
		return ErrExists
	}
	g.Version = 1
	s.games[g.LobbyID] = g.Snapshot()
	s.notifyLocked(g.LobbyID)
	return nil
}

func (s *MemoryStore) Load(lobbyID string) (*engine.Game, error) {
	s.mu.Lock()
	snap, ok := s.games[lobbyID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return engine.FromSnapshot(snap)
}

func (s *MemoryStore) Save(g *engine.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.games[g.LobbyID]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != g.Version {
		return ErrConflict
	}
	next := g.Snapshot()
	next.Version = g.Version + 1
	s.games[g.LobbyID] = next
	g.Version = next.Version
	s.notifyLocked(g.LobbyID)
	return nil
}

func (s *MemoryStore) Delete(lobbyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, lobbyID)
	s.notifyLocked(lobbyID)
	return nil
}

func (s *MemoryStore) Subscribe(lobbyID string) (Subscription, error) {
	sub := &memorySubscription{
		store:   s,
		lobbyID: lobbyID,
		ch:      make(chan struct{}, 1),
	}
	s.mu.Lock()
	s.subs[lobbyID] = append(s.subs[lobbyID], sub)
	s.mu.Unlock()
	return sub, nil
}

func (s *MemoryStore) notifyLocked(lobbyID string) {
	for _, sub := range s.subs[lobbyID] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

type memorySubscription struct {
	store   *MemoryStore
	lobbyID string
	ch      chan struct{}
}

func (s *memorySubscription) C() <-chan struct{} { return s.ch }

func (s *memorySubscription) Close() error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	subs := s.store.subs[s.lobbyID]
	for i, sub := range subs {
		if sub == s {
			s.store.subs[s.lobbyID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	return nil
}
