package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryStore struct {
	data   map[string]string
	getErr error
}

func (m *memoryStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = value.(string)
	return true, nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func TestRedisLockIsExclusive(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{data: map[string]string{}}
	first, err := NewRedisLock(store, "sa:lock:report_warm", 0)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	second, _ := NewRedisLock(store, "sa:lock:report_warm", time.Minute)

	if ok, err := first.Acquire(ctx); err != nil || !ok {
		t.Fatalf("expected first acquire, ok=%v err=%v", ok, err)
	}
	if ok, err := second.Acquire(ctx); err != nil || ok {
		t.Fatalf("expected second acquire to fail, ok=%v err=%v", ok, err)
	}
	if err := second.Release(ctx); err != nil {
		t.Fatalf("release without ownership: %v", err)
	}
	if _, held := store.data["sa:lock:report_warm"]; !held {
		t.Fatal("non-owner release must not delete the key")
	}
	if err := first.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := second.Acquire(ctx); !ok {
		t.Fatal("expected lock to be free after owner release")
	}
}

func TestRedisLockReleaseSkipsForeignOwner(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{data: map[string]string{}}
	lock, _ := NewRedisLock(store, "k", time.Minute)
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("expected acquire")
	}
	store.data["k"] = "someone-else"
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if store.data["k"] != "someone-else" {
		t.Fatal("lock taken over by another owner must survive release")
	}

	store.getErr = errors.New("timeout")
	lock.owner = "x"
	if err := lock.Release(ctx); err == nil {
		t.Fatal("expected read error to surface")
	}
}

func TestNewRedisLockValidation(t *testing.T) {
	if _, err := NewRedisLock(nil, "k", 0); err == nil {
		t.Fatal("expected client requirement")
	}
	if _, err := NewRedisLock(&memoryStore{}, "", 0); err == nil {
		t.Fatal("expected key requirement")
	}
}
