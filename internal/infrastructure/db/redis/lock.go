package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/oladokun-o/engine/internal/core/domain"
	"github.com/oladokun-o/engine/internal/core/ports"
)

const (
	defaultLockTTL   = 5 * time.Second
	defaultLockWait  = 2 * time.Second
	defaultLockRetry = 50 * time.Millisecond
	keyPrefix        = "lock:"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lease never removes a lock somebody else acquired since.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// lockClient is the part of *redis.Client the locker needs.
type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// LockOptions tunes lease length and how long Acquire keeps retrying.
type LockOptions struct {
	TTL   time.Duration
	Wait  time.Duration
	Retry time.Duration
}

// Locker is a lease-based mutex keyed by subject.
// Key format: lock:<subject>, value: a random token per holder.
type Locker struct {
	client lockClient
	opts   LockOptions
	log    zerolog.Logger
}

var _ ports.Locker = (*Locker)(nil)

// NewLocker wraps the given client. Zero options fall back to defaults.
func NewLocker(client lockClient, opts LockOptions, log zerolog.Logger) *Locker {
	if opts.TTL <= 0 {
		opts.TTL = defaultLockTTL
	}
	if opts.Wait <= 0 {
		opts.Wait = defaultLockWait
	}
	if opts.Retry <= 0 {
		opts.Retry = defaultLockRetry
	}
	return &Locker{client: client, opts: opts, log: log}
}

// Acquire takes the lock for key, retrying until opts.Wait elapses.
// It returns domain.ErrBusy when the lock stays held by someone else.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	k := keyPrefix + key
	token := uuid.NewString()

	deadline := time.NewTimer(l.opts.Wait)
	defer deadline.Stop()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.opts.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if ok {
			return func() { l.release(k, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, domain.ErrBusy
		case <-time.After(l.opts.Retry):
		}
	}
}

// release runs on its own context so a cancelled request still frees the
// lease instead of waiting out the TTL.
func (l *Locker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("lock release failed")
	}
}
