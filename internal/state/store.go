package state

import (
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable client-side key/value surface. Every key is owned by
// exactly one component family (token, pantry, form drafts, pending favorite).
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string)
}

// Namespaced storage keys. Opaque to the backend.
const (
	KeyAccessToken         = "access_token"
	KeyPantryItems         = "pantry-items"
	KeyIngredients         = "recipe-ingredients"
	KeyExclude             = "recipe-exclude"
	KeyTimeLimit           = "recipe-time-limit"
	KeyServings            = "recipe-servings"
	KeyTools               = "recipe-tools"
	KeyOnboardingCompleted = "onboarding-completed"
	KeyLoginBannerClosed   = "login-banner-dismissed"
	KeyPendingFavorite     = "pendingFavorite"
)

// FileStore keeps one file per key under Dir.
type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(fs.Dir, key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (fs *FileStore) Set(key, value string) error {
	path := filepath.Join(fs.Dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0644)
}

func (fs *FileStore) Delete(key string) {
	_ = os.Remove(filepath.Join(fs.Dir, key))
}

// MemoryStore backs session-scoped flags and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
