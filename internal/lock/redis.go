package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrLockTimeout = errors.New("could not obtain stock lock")

// Redis coordinates keys across several API instances sharing one store.
type Redis struct {
	client *redislock.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

// NewRedis wraps an existing go-redis client. ttl bounds how long a crashed
// holder can block a key.
func NewRedis(rdb redis.UniversalClient, ttl time.Duration, log *zap.Logger) *Redis {
	return &Redis{
		client: redislock.New(rdb),
		ttl:    ttl,
		prefix: "lock:stock:",
		log:    log,
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(25 * time.Millisecond),
	}
	// Without a caller deadline, wait at most one TTL.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.ttl)
		defer cancel()
	}

	l, err := r.client.Obtain(ctx, r.prefix+key, r.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w for %s", ErrLockTimeout, key)
	}
	if err != nil {
		return nil, err
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		if err := l.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			r.log.Warn("failed to release stock lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
