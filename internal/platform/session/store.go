// Package session stores the server-asserted identity snapshot for a browsing session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no identity exists for a session ID.
var ErrNotFound = errors.New("session not found")

// Identity is a cache of the identity the upstream API asserted at login.
// It is a UX convenience, not an authorization mechanism: the upstream API
// re-checks authorization on every call it owns.
type Identity struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"userId"`
	Username      string `json:"username"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
}

// DisplayName returns the name shown in the navigation bar.
func (i *Identity) DisplayName() string {
	if i.FullName != "" {
		return i.FullName
	}
	return i.Username
}

// Store persists identities in Redis keyed by session ID.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore creates a session store. If ttl is 0 it defaults to 12 hours,
// approximating a browsing session.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "session"
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

// Create persists a new identity and returns the generated session ID.
func (s *Store) Create(ctx context.Context, identity *Identity) (string, error) {
	data, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal identity: %w", err)
	}
	id := uuid.NewString()
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Find retrieves the identity for a session ID.
func (s *Store) Find(ctx context.Context, id string) (*Identity, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity: %w", err)
	}
	return &identity, nil
}

// Destroy removes the identity for a session ID. Destroying a session that
// does not exist is not an error.
func (s *Store) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
