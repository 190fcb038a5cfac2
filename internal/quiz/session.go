package quiz

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultSessionTTL = 2 * time.Hour

// sessionCommands is the slice of the Redis API the session store uses.
type sessionCommands interface {
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore keeps the ids a quiz session has already been served in
// Redis, so clients can omit previous_questions.
type SessionStore struct {
	redis  sessionCommands
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionStore creates a session store backed by Redis. Sessions expire
// ttl after their last draw.
func NewSessionStore(client sessionCommands, ttl time.Duration, logger zerolog.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		redis:  client,
		ttl:    ttl,
		logger: logger.With().Str("component", "quiz_sessions").Logger(),
	}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("quiz:session:%s", id.String())
}

// Seen returns the question ids recorded for a session. An unknown or
// expired session has seen nothing.
func (s *SessionStore) Seen(ctx context.Context, id uuid.UUID) ([]int, error) {
	members, err := s.redis.SMembers(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		n, err := strconv.Atoi(m)
		if err != nil {
			s.logger.Warn().Str("session_id", id.String()).Str("member", m).Msg("skip corrupted session entry")
			continue
		}
		ids = append(ids, n)
	}
	return ids, nil
}

// Record adds questionID to the session and refreshes its expiry.
func (s *SessionStore) Record(ctx context.Context, id uuid.UUID, questionID int) error {
	key := sessionKey(id)
	if err := s.redis.SAdd(ctx, key, questionID).Err(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	if err := s.redis.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("record session expiry: %w", err)
	}
	return nil
}

// Reset forgets everything the session has seen.
func (s *SessionStore) Reset(ctx context.Context, id uuid.UUID) error {
	if err := s.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
