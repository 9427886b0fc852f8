package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
)

const sessionKeyPrefix = "session:user"

// SessionRepository pins the current access token per user. One active
// session per account: logging in elsewhere overwrites the pin and kills the
// old token.
type SessionRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func sessionKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", sessionKeyPrefix, userID)
}

func (r *SessionRepository) Save(userID uint64, token string) error {
	if err := r.Client.Set(context.Background(), sessionKey(userID), token, r.TTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Token(userID uint64) (string, error) {
	token, err := r.Client.Get(context.Background(), sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// Extend pushes the session expiry forward after a successful request.
func (r *SessionRepository) Extend(userID uint64) error {
	if err := r.Client.Expire(context.Background(), sessionKey(userID), r.TTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Delete(userID uint64) error {
	if err := r.Client.Del(context.Background(), sessionKey(userID)).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
