package state

import (
	"encoding/json"
	"sync"
)

// Persisted mirrors an in-memory value to the store under a fixed key.
// It hydrates once at construction: a present, parseable stored value wins
// over the default. Store write failures are swallowed so the in-memory
// value always stays authoritative for the session.
type Persisted[T any] struct {
	store Store
	key   string

	mu    sync.RWMutex
	value T
}

func NewPersisted[T any](store Store, key string, defaultValue T) *Persisted[T] {
	p := &Persisted[T]{store: store, key: key, value: defaultValue}
	if raw, ok := store.Get(key); ok {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			p.value = v
		}
	}
	return p
}

func (p *Persisted[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

func (p *Persisted[T]) Set(value T) {
	p.mu.Lock()
	p.value = value
	p.mu.Unlock()

	if raw, err := json.Marshal(value); err == nil {
		_ = p.store.Set(p.key, string(raw))
	}
}

// Update applies fn to the current value under the lock, then mirrors.
func (p *Persisted[T]) Update(fn func(T) T) T {
	p.mu.Lock()
	p.value = fn(p.value)
	value := p.value
	p.mu.Unlock()

	if raw, err := json.Marshal(value); err == nil {
		_ = p.store.Set(p.key, string(raw))
	}
	return value
}
