// Package keymutex provides per-key mutual exclusion. Every load-mutate-save
// cycle against a player record runs under that record's key so concurrent
// commands for one player are totally ordered, while commands for distinct
// players proceed in parallel.
package keymutex

import "sync"

// KeyedMutex serializes work per key. The zero value is not usable; call New.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*lockEntry),
	}
}

// Lock acquires the mutex for key, blocking until it is available
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that is not held panics.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		// last holder; entry is recreated on next Lock
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// LockPair acquires both keys in lexicographic order so that two concurrent
// two-party operations can never deadlock on each other. The keys must be
// distinct; locking the same key twice would self-deadlock, so callers reject
// self-targeted operations before locking.
func (k *KeyedMutex) LockPair(a, b string) {
	if b < a {
		a, b = b, a
	}
	k.Lock(a)
	k.Lock(b)
}

// UnlockPair releases both keys acquired by LockPair
func (k *KeyedMutex) UnlockPair(a, b string) {
	k.Unlock(a)
	k.Unlock(b)
}
