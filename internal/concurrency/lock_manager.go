// Package concurrency provides in-process keyed locks.
package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key, e.g. per battle id.
// Locks only serialise work inside this process; cross-instance safety comes from the database.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(key string, fn func() error) error {
	lock := lm.GetLock(key)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// Forget drops the mutex for a key that will not be contended again,
// such as a finished battle. A caller already holding it keeps a valid lock.
func (lm *LockManager) Forget(key string) {
	lm.locks.Delete(key)
}
