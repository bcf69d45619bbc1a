// Package lease provides an advisory lock so that only one process runs a
// periodic job at a time. Correctness never depends on holding it.
package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/qurancms/recitation-api/pkg/config"
)

// keyPrefix namespaces lease keys in a shared redis
const keyPrefix = "recitation-api:lease:"

// Lease is a held lock
type Lease interface {
	Release(ctx context.Context) error
}

// Locker hands out leases by name
type Locker interface {
	// TryAcquire returns ok=false without error when another holder has the lease
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (Lease, bool, error)
}

// New returns a redis-backed locker when an address is configured, otherwise a local one
func New(cfg config.RedisConfig) Locker {
	if cfg.Addr == "" {
		return Local{}
	}
	return NewRedis(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

// Local always grants the lease; used for single-process deployments
type Local struct{}

func (Local) TryAcquire(ctx context.Context, name string, ttl time.Duration) (Lease, bool, error) {
	return localLease{}, true, nil
}

type localLease struct{}

func (localLease) Release(ctx context.Context) error { return nil }

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis implements Locker with SET NX PX and a compare-and-delete release
type Redis struct {
	client redis.UniversalClient
}

// NewRedis wraps an existing client
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) TryAcquire(ctx context.Context, name string, ttl time.Duration) (Lease, bool, error) {
	key := keyPrefix + name
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquiring lease %s: %w", name, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &redisLease{client: r.client, key: key, token: token}, true, nil
}

// Close releases the underlying client
func (r *Redis) Close() error {
	return r.client.Close()
}

type redisLease struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (l *redisLease) Release(ctx context.Context) error {
	err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("releasing lease %s: %w", l.key, err)
	}
	return nil
}
