package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessionSets mimics the Redis set commands the session store issues.
type memorySessionSets struct {
	mu      sync.Mutex
	sets    map[string]map[string]struct{}
	ttls    map[string]time.Duration
	expires int
	failing bool
}

func newMemorySessionSets() *memorySessionSets {
	return &memorySessionSets{sets: map[string]map[string]struct{}{}, ttls: map[string]time.Duration{}}
}

func (m *memorySessionSets) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return redis.NewStringSliceResult(nil, errors.New("connection refused"))
	}
	members := []string{}
	for v := range m.sets[key] {
		members = append(members, v)
	}
	sort.Strings(members)
	return redis.NewStringSliceResult(members, nil)
}

func (m *memorySessionSets) SAdd(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	set, ok := m.sets[key]
	if !ok {
		set = map[string]struct{}{}
		m.sets[key] = set
	}
	var added int64
	for _, v := range members {
		member := fmt.Sprint(v)
		if _, dup := set[member]; !dup {
			set[member] = struct{}{}
			added++
		}
	}
	return redis.NewIntResult(added, nil)
}

func (m *memorySessionSets) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires++
	if _, ok := m.sets[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	m.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (m *memorySessionSets) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := m.sets[key]; ok {
			removed++
		}
		delete(m.sets, key)
		delete(m.ttls, key)
	}
	return redis.NewIntResult(removed, nil)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	backend := newMemorySessionSets()
	store := NewSessionStore(backend, 10*time.Minute, zerolog.New(io.Discard))
	ctx := context.Background()
	id := uuid.New()

	seen, err := store.Seen(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, seen)

	require.NoError(t, store.Record(ctx, id, 4))
	require.NoError(t, store.Record(ctx, id, 12))
	require.NoError(t, store.Record(ctx, id, 4))

	seen, err = store.Seen(ctx, id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{4, 12}, seen)
	assert.Equal(t, 10*time.Minute, backend.ttls[sessionKey(id)])
	assert.Equal(t, 3, backend.expires, "every draw refreshes the expiry")

	other, err := store.Seen(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSessionStoreReset(t *testing.T) {
	backend := newMemorySessionSets()
	store := NewSessionStore(backend, time.Minute, zerolog.New(io.Discard))
	ctx := context.Background()
	id, keep := uuid.New(), uuid.New()

	require.NoError(t, store.Record(ctx, id, 1))
	require.NoError(t, store.Record(ctx, keep, 2))
	require.NoError(t, store.Reset(ctx, id))

	seen, err := store.Seen(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, seen)
	assert.NotContains(t, backend.ttls, sessionKey(id))

	seen, err = store.Seen(ctx, keep)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, seen)

	require.NoError(t, store.Reset(ctx, uuid.New()))
}

func TestSessionStoreSkipsCorruptedEntries(t *testing.T) {
	backend := newMemorySessionSets()
	store := NewSessionStore(backend, time.Minute, zerolog.New(io.Discard))
	ctx := context.Background()
	id := uuid.New()

	backend.sets[sessionKey(id)] = map[string]struct{}{"7": {}, "abc": {}, "9": {}}

	seen, err := store.Seen(ctx, id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{7, 9}, seen)
}

func TestSessionStoreBackendErrors(t *testing.T) {
	backend := newMemorySessionSets()
	backend.failing = true
	store := NewSessionStore(backend, time.Minute, zerolog.New(io.Discard))
	ctx := context.Background()
	id := uuid.New()

	_, err := store.Seen(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read session")

	err = store.Record(ctx, id, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record session")
	assert.Zero(t, backend.expires)
}

func TestSessionKey(t *testing.T) {
	id := uuid.MustParse("6f1c2b4e-8d3a-4c5b-9e7f-0a1b2c3d4e5f")
	assert.Equal(t, "quiz:session:6f1c2b4e-8d3a-4c5b-9e7f-0a1b2c3d4e5f", sessionKey(id))
}

func TestSessionStoreDefaultsTTL(t *testing.T) {
	store := NewSessionStore(nil, 0, zerolog.New(io.Discard))
	assert.Equal(t, defaultSessionTTL, store.ttl)
}

func TestSessionStoreUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewSessionStore(client, time.Minute, zerolog.New(io.Discard))

	ctx := context.Background()
	id := uuid.New()

	_, err := store.Seen(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read session")

	err = store.Record(ctx, id, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record session")

	err = store.Reset(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reset session")
}

func TestDrawThroughRedisSessionStore(t *testing.T) {
	backend := newMemorySessionSets()
	store := NewSessionStore(backend, time.Minute, zerolog.New(io.Discard))
	svc := NewService(stubQuestions{items: pool()}, store, seeded(), nil, zerolog.New(io.Discard))
	ctx := context.Background()

	first, err := svc.Draw(ctx, DrawInput{NewSession: true})
	require.NoError(t, err)
	require.NotNil(t, first.Question)
	id := uuid.MustParse(first.SessionID)

	served := []int{first.Question.ID}
	for {
		res, err := svc.Draw(ctx, DrawInput{SessionID: first.SessionID})
		require.NoError(t, err)
		if res.Question == nil {
			break
		}
		served = append(served, res.Question.ID)
		require.LessOrEqual(t, len(served), len(pool()))
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, served)

	seen, err := store.Seen(ctx, id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, seen)

	_, err = svc.Draw(ctx, DrawInput{SessionID: first.SessionID, Reset: true})
	require.NoError(t, err)
	seen, err = store.Seen(ctx, id)
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}
