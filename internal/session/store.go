// Package session implements the opaque-token session store backed by Redis.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vitrine/internal/observability"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token does not resolve to a live session.
var ErrNotFound = errors.New("session not found")

const (
	keyPrefix   = "session:"
	tokenPrefix = "vtr_"
	tokenBytes  = 32
)

// Session is a resolved session record.
type Session struct {
	Token        string    `json:"token"`
	UserID       uint      `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Store persists sessions in Redis with a sliding TTL. Every Touch re-arms
// the expiry, so a session dies only after the full TTL of inactivity.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a session store writing to the given Redis client.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

// generateToken produces an unguessable opaque token from crypto/rand.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session token generation: %w", err)
	}
	return tokenPrefix + hex.EncodeToString(buf), nil
}

// Create opens a new session for the user and returns its token.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	if s.rdb == nil {
		return "", errors.New("session store unavailable")
	}
	token, err := generateToken()
	if err != nil {
		observability.SessionOps.WithLabelValues("create", "error").Inc()
		return "", err
	}

	now := time.Now().UTC()
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, sessionKey(token), map[string]interface{}{
		"user_id":       strconv.FormatUint(uint64(userID), 10),
		"created_at":    now.Format(time.RFC3339Nano),
		"last_activity": now.Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, sessionKey(token), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		observability.SessionOps.WithLabelValues("create", "error").Inc()
		return "", err
	}

	observability.SessionOps.WithLabelValues("create", "ok").Inc()
	return token, nil
}

// Resolve looks up a token. Returns ErrNotFound for unknown or expired tokens.
func (s *Store) Resolve(ctx context.Context, token string) (*Session, error) {
	if s.rdb == nil {
		return nil, errors.New("session store unavailable")
	}
	fields, err := s.rdb.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		observability.SessionOps.WithLabelValues("resolve", "error").Inc()
		return nil, err
	}
	if len(fields) == 0 {
		observability.SessionOps.WithLabelValues("resolve", "miss").Inc()
		return nil, ErrNotFound
	}

	userID, err := strconv.ParseUint(fields["user_id"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("corrupt session record for token: %w", err)
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])
	lastActivity, _ := time.Parse(time.RFC3339Nano, fields["last_activity"])

	observability.SessionOps.WithLabelValues("resolve", "ok").Inc()
	return &Session{
		Token:        token,
		UserID:       uint(userID),
		CreatedAt:    createdAt,
		LastActivity: lastActivity,
	}, nil
}

// Touch updates last activity and re-arms the TTL. Concurrent touches are
// last-write-wins; no ordering guarantee is needed beyond wall-clock time.
func (s *Store) Touch(ctx context.Context, token string) error {
	if s.rdb == nil {
		return errors.New("session store unavailable")
	}
	exists, err := s.rdb.Exists(ctx, sessionKey(token)).Result()
	if err != nil {
		observability.SessionOps.WithLabelValues("touch", "error").Inc()
		return err
	}
	if exists == 0 {
		observability.SessionOps.WithLabelValues("touch", "miss").Inc()
		return ErrNotFound
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, sessionKey(token), "last_activity", time.Now().UTC().Format(time.RFC3339Nano))
	pipe.Expire(ctx, sessionKey(token), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		observability.SessionOps.WithLabelValues("touch", "error").Inc()
		return err
	}
	observability.SessionOps.WithLabelValues("touch", "ok").Inc()
	return nil
}

// Revoke deletes the session. Revoking an unknown token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if s.rdb == nil {
		return errors.New("session store unavailable")
	}
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		observability.SessionOps.WithLabelValues("revoke", "error").Inc()
		return err
	}
	observability.SessionOps.WithLabelValues("revoke", "ok").Inc()
	return nil
}
