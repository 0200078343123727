package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// Storage keys for the whole-collection snapshots. Each key holds one JSON
// document that is replaced wholesale on every write (last write wins).
const (
	KeyProjects      = "inte-real-projects"
	KeyPrompts       = "inte-real-prompts"
	KeyNotifications = "inte-real-notifications"
	KeySettings      = "inte-real-settings"
	KeyIdentity      = "inte-real-identity"
)

// ErrNotFound is returned by backends when a key has never been written.
var ErrNotFound = errors.New("localstore: key not found")

// Backend stores raw JSON blobs under fixed keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Store is the local persistence adapter. Reads degrade to "no data" and
// writes are best-effort: a missing key, corrupted entry, or failed write is
// logged and swallowed so callers never see a storage error.
type Store struct {
	backend Backend
}

func New(b Backend) *Store {
	return &Store{backend: b}
}

// LoadList reads the collection under key. It returns an empty list when the
// key is absent or the stored JSON cannot be parsed.
func LoadList[T any](ctx context.Context, s *Store, key string) []T {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[warn] localstore key=%s read failed: %v", key, err)
		}
		return []T{}
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("[warn] localstore key=%s corrupted entry: %v", key, err)
		return []T{}
	}
	if list == nil {
		list = []T{}
	}
	return list
}

// SaveList replaces the collection under key. Failures are logged, not
// surfaced; the in-memory copy stays authoritative for the session.
func SaveList[T any](ctx context.Context, s *Store, key string, list []T) {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		log.Printf("[warn] localstore key=%s marshal failed: %v", key, err)
		return
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		log.Printf("[warn] localstore key=%s write failed: %v", key, err)
	}
}

// LoadValue reads a single JSON document under key into v. It reports whether
// a usable value was found.
func LoadValue(ctx context.Context, s *Store, key string, v any) bool {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[warn] localstore key=%s read failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("[warn] localstore key=%s corrupted entry: %v", key, err)
		return false
	}
	return true
}

// SaveValue writes a single JSON document under key, best-effort.
func SaveValue(ctx context.Context, s *Store, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[warn] localstore key=%s marshal failed: %v", key, err)
		return
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		log.Printf("[warn] localstore key=%s write failed: %v", key, err)
	}
}
