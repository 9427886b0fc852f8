package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/pkg"

	"github.com/redis/go-redis/v9"
)

const DefaultCodeTTL = 5 * time.Minute

// CodeRepository stores emailed verification codes, keyed by scope
// ("register", "reset") and address, with a TTL.
type CodeRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func (r *CodeRepository) key(scope, email string) string {
	return fmt.Sprintf("email:code:%s:%s", scope, email)
}

func (r *CodeRepository) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return DefaultCodeTTL
}

func (r *CodeRepository) Save(scope, email, code string) error {
	if err := r.Client.Set(context.Background(), r.key(scope, email), code, r.ttl()).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *CodeRepository) Get(scope, email string) (string, error) {
	code, err := r.Client.Get(context.Background(), r.key(scope, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", pkg.ErrNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return code, nil
}

// Delete burns a code after a successful verification. Idempotent.
func (r *CodeRepository) Delete(scope, email string) error {
	if err := r.Client.Del(context.Background(), r.key(scope, email)).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
