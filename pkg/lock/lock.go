// Package lock serializes work on a string key, either inside one process or
// across instances sharing a redis.
package lock

import (
	"career_coach_backend/pkg/logger"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker acquires a lock on key and returns the function that releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// Local is a keyed mutex. Entries are dropped once no caller holds or waits on them.
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewLocal() *Local {
	return &Local{entries: make(map[string]*entry)}
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		e.mu.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-ctx.Done():
		// the goroutine still takes the mutex; hand it straight back
		go func() {
			<-acquired
			l.release(key, e)
		}()
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() { once.Do(func() { l.release(key, e) }) }, nil
}

func (l *Local) release(key string, e *entry) {
	e.mu.Unlock()
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()
}

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// Redis is a SET NX PX lock. The ttl bounds how long a crashed holder blocks others.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	script *redis.Script
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
		script: redis.NewScript(unlockScript),
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	key = "lock:" + key
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		case <-time.After(r.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { r.release(key, token) })
	}, nil
}

// release runs on a fresh context so a cancelled request still frees the key.
func (r *Redis) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deleted, err := r.script.Run(ctx, r.client, []string{key}, token).Int()
	switch {
	case err != nil:
		logger.Log.Warn("Failed to release lock", zap.String("key", key), zap.Error(err))
	case deleted == 0:
		logger.Log.Warn("Lock expired before release", zap.String("key", key))
	}
}
