package store

import (
	"encoding/json"
	"errors"

	"github.com/gomodule/redigo/redis"

	"nexopoly/platform/cache"
	"nexopoly/platform/engine"
	"nexopoly/platform/logging"
)

// RedisStore keeps each lobby's snapshot under one key and commits with
// WATCH/MULTI/EXEC, so a lost race surfaces as ErrConflict instead of a
// silently interleaved write.
type RedisStore struct {
	pool *redis.Pool
}

func NewRedisStore(pool *redis.Pool) *RedisStore {
	return &RedisStore{pool: pool}
}

func gameKey(lobbyID string) string      { return "game:" + lobbyID }
func eventChannel(lobbyID string) string { return "game:" + lobbyID + ":events" }

func (s *RedisStore) Create(g *engine.Game) error {
	conn := s.pool.Get()
	defer conn.Close()

	g.Version = 1
	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		return err
	}
	reply, err := redis.String(conn.Do("SET", gameKey(g.LobbyID), string(data), "NX"))
	if errors.Is(err, redis.ErrNil) {
		return ErrExists
	}
	if err != nil {
		return err
	}
	if reply != "OK" {
		return ErrExists
	}
	return cache.Publish(conn, eventChannel(g.LobbyID), "created")
}

func (s *RedisStore) Load(lobbyID string) (*engine.Game, error) {
	conn := s.pool.Get()
	defer conn.Close()

	data, err := cache.Get(conn, gameKey(lobbyID))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap engine.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return engine.FromSnapshot(&snap)
}

func (s *RedisStore) Save(g *engine.Game) error {
	conn := s.pool.Get()
	defer conn.Close()

	key := gameKey(g.LobbyID)
	if _, err := conn.Do("WATCH", key); err != nil {
		return err
	}
	data, err := cache.Get(conn, key)
	if errors.Is(err, redis.ErrNil) {
		conn.Do("UNWATCH")
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	var cur engine.Snapshot
	if err := json.Unmarshal([]byte(data), &cur); err != nil {
		return err
	}
	if cur.Version != g.Version {
		conn.Do("UNWATCH")
		return ErrConflict
	}

	next := g.Snapshot()
	next.Version = g.Version + 1
	payload, err := json.Marshal(next)
	if err != nil {
		conn.Do("UNWATCH")
		return err
	}
	conn.Send("MULTI")
	conn.Send("SET", key, string(payload))
	queued, err := conn.Do("EXEC")
	if err != nil {
		return err
	}
	if queued == nil {
		// WATCH tripped: someone else committed first.
		return ErrConflict
	}
	g.Version = next.Version
	return cache.Publish(conn, eventChannel(g.LobbyID), "updated")
}

func (s *RedisStore) Delete(lobbyID string) error {
	conn := s.pool.Get()
	defer conn.Close()
	if err := cache.Del(conn, gameKey(lobbyID)); err != nil {
		return err
	}
	return cache.Publish(conn, eventChannel(lobbyID), "deleted")
}

func (s *RedisStore) Subscribe(lobbyID string) (Subscription, error) {
	conn, err := cache.Dial()
	if err != nil {
		return nil, err
	}
	psc := redis.PubSubConn{Conn: conn}
	if err := psc.Subscribe(eventChannel(lobbyID)); err != nil {
		conn.Close()
		return nil, err
	}
	sub := &redisSubscription{psc: psc, ch: make(chan struct{}, 1)}
	go sub.pump(lobbyID)
	return sub, nil
}

type redisSubscription struct {
	psc redis.PubSubConn
	ch  chan struct{}
}

func (s *redisSubscription) pump(lobbyID string) {
	for {
		switch m := s.psc.Receive().(type) {
		case redis.Message:
			// Coalescing is fine: observers re-read the full state anyway.
			select {
			case s.ch <- struct{}{}:
			default:
			}
		case error:
			logging.Log.Debugw("subscription closed", "lobby", lobbyID, "err", m)
			close(s.ch)
			return
		}
	}
}

func (s *redisSubscription) C() <-chan struct{} { return s.ch }

func (s *redisSubscription) Close() error {
	s.psc.Unsubscribe()
	return s.psc.Conn.Close()
}
