package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeUsers struct {
	mu      sync.Mutex
	expired []string
	err     error
}

func (f *fakeUsers) FindExpiredUnconfirmed(_ context.Context, _ time.Time, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	ids := f.expired
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return append([]string{}, ids...), nil
}

type fakeDeleter struct {
	users   *fakeUsers
	failFor map[string]bool
	deleted []string
}

func (f *fakeDeleter) DeleteUser(_ context.Context, userID string) error {
	if f.failFor[userID] {
		return errors.New("boom")
	}
	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	for i, id := range f.users.expired {
		if id == userID {
			f.users.expired = append(f.users.expired[:i], f.users.expired[i+1:]...)
			break
		}
	}
	f.deleted = append(f.deleted, userID)
	return nil
}

func TestPurgeOnce(t *testing.T) {
	users := &fakeUsers{expired: []string{"a", "b", "c"}}
	deleter := &fakeDeleter{users: users, failFor: map[string]bool{"b": true}}
	p := NewPurger(users, deleter, time.Minute, zap.NewNop())

	n, err := p.PurgeOnce(context.Background())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 2 {
		t.Errorf("purged %d, want 2", n)
	}
	if len(users.expired) != 1 || users.expired[0] != "b" {
		t.Errorf("remaining = %v", users.expired)
	}
}

func TestPurgeOnce_Batches(t *testing.T) {
	users := &fakeUsers{}
	for i := 0; i < purgeBatchSize+5; i++ {
		users.expired = append(users.expired, fmt.Sprintf("user-%d", i))
	}
	deleter := &fakeDeleter{users: users}
	p := NewPurger(users, deleter, time.Minute, zap.NewNop())

	n, err := p.PurgeOnce(context.Background())
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != purgeBatchSize+5 || len(users.expired) != 0 {
		t.Errorf("purged %d, %d left", n, len(users.expired))
	}
}

func TestPurgeOnce_FinderError(t *testing.T) {
	users := &fakeUsers{err: errors.New("db down")}
	p := NewPurger(users, &fakeDeleter{users: users}, time.Minute, zap.NewNop())

	if _, err := p.PurgeOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	users := &fakeUsers{expired: []string{"a"}}
	p := NewPurger(users, &fakeDeleter{users: users}, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for {
		users.mu.Lock()
		left := len(users.expired)
		users.mu.Unlock()
		if left == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expired user not purged")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
