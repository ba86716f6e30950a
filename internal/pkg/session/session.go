// Package session resolves bearer tokens to accounts. Tokens are minted
// by the OAuth callback (outside this service's core) and stored in redis
// so every instance can resolve them.
package session

import (
	"time"

	"github.com/dchest/uniuri"
	"github.com/redis/go-redis/v9"

	"github.com/gmstracker/backend/internal/pkg/cache"
)

const tokenLen = 32

type Session struct {
	AccountID int       `msgpack:"accountId"`
	IssuedAt  time.Time `msgpack:"issuedAt"`
}

type Store struct {
	set *cache.Set[Session]
	ttl time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		set: cache.NewSet[Session](client, "gms:session"),
		ttl: ttl,
	}
}

// Create mints a fresh random token for the account and persists it.
func (s *Store) Create(accountID int) (string, error) {
	token := uniuri.NewLen(tokenLen)
	sess := Session{
		AccountID: accountID,
		IssuedAt:  time.Now(),
	}
	if err := s.set.Set(token, sess, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token. Returns cache.ErrNotFound for unknown or expired
// tokens.
func (s *Store) Get(token string) (*Session, error) {
	var sess Session
	if err := s.set.Get(token, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Revoke(token string) error {
	return s.set.Delete(token)
}
