package lock

import (
	"career_coach_backend/pkg/logger"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLocalSerializesSameKey(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "quiz:1:software-engineer")
			if err != nil {
				t.Errorf("Lock() error = %v", err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxSeen)
	}
	if len(l.entries) != 0 {
		t.Fatalf("entries left after release = %d, want 0", len(l.entries))
	}
}

func TestLocalDifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := l.Lock(ctx, "b")
		if err == nil {
			unlockB()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestLocalContextCancel(t *testing.T) {
	l := NewLocal()

	unlock, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "k"); err == nil {
		t.Fatal("expected error when context expires while waiting")
	}

	unlock()
	unlock() // second call is a no-op

	unlock2, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	unlock2()
}

func TestRedisReleaseLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	NewRedis(client, time.Second).release("lock:quiz:1:software-engineer", uuid.NewString())

	entries := logs.FilterMessage("Failed to release lock").All()
	if len(entries) != 1 {
		t.Fatalf("warn entries = %d, want 1", len(entries))
	}
	if key := entries[0].ContextMap()["key"]; key != "lock:quiz:1:software-engineer" {
		t.Errorf("logged key = %v", key)
	}
}

func TestRedisLockReturnsDialError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	unlock, err := NewRedis(client, time.Second).Lock(context.Background(), "quiz:1:software-engineer")
	if err == nil || unlock != nil {
		t.Fatalf("Lock() = %v, %v, want dial error", unlock != nil, err)
	}
}
