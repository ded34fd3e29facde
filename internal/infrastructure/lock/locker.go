// Package lock provides the per-raffle single-writer lock taken around every
// raffle transaction.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLockTimeout is returned when the lock stays held by another writer for
// longer than the wait budget. Callers treat it as retriable contention.
var ErrLockTimeout = errors.New("raffle lock wait timed out")

// ReleaseFunc releases an acquired lock. It is safe to call once.
type ReleaseFunc func()

// RaffleLocker serializes writers of a single raffle. Raffles never share a lock.
type RaffleLocker interface {
	Acquire(ctx context.Context, raffleID uint) (ReleaseFunc, error)
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

// KeyedLocker is an in-process RaffleLocker for single-instance deployments.
type KeyedLocker struct {
	mu      sync.Mutex
	entries map[uint]*keyedEntry
	wait    time.Duration
}

// NewKeyedLocker returns a locker whose Acquire gives up after wait.
func NewKeyedLocker(wait time.Duration) *KeyedLocker {
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &KeyedLocker{
		entries: make(map[uint]*keyedEntry),
		wait:    wait,
	}
}

func (l *KeyedLocker) Acquire(ctx context.Context, raffleID uint) (ReleaseFunc, error) {
	l.mu.Lock()
	e, ok := l.entries[raffleID]
	if !ok {
		e = &keyedEntry{ch: make(chan struct{}, 1)}
		l.entries[raffleID] = e
	}
	e.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				l.unref(raffleID, e)
			})
		}, nil
	case <-timer.C:
		l.unref(raffleID, e)
		return nil, ErrLockTimeout
	case <-ctx.Done():
		l.unref(raffleID, e)
		return nil, ctx.Err()
	}
}

func (l *KeyedLocker) unref(raffleID uint, e *keyedEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, raffleID)
	}
}

// size reports the number of raffles with waiters or holders.
func (l *KeyedLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
