// Package storage implements the local key-value store backing user toggles.
//
// Values are opaque strings kept in a single JSON object on disk, the same
// shape a browser's localStorage exposes: get a string or nothing, set a string.
package storage

import (
	"sync"

	"github.com/autoskip-cli/autoskip/filesystem"
	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// KV is the capability consumers depend on.
type KV interface {
	Get(key string) mo.Option[string]
	Set(key, value string) error
}

// Store is a KV persisted through gache over the virtual filesystem.
type Store struct {
	mu     sync.Mutex
	path   string
	cacher *gache.Cache[map[string]string]
}

// New returns a Store persisted at path.
func New(path string) *Store {
	return &Store{
		path: path,
		cacher: gache.New[map[string]string](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store located at where.Storage().
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = New(where.Storage())
	})
	return defaultStore
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// load never fails: an unreadable or corrupt file reads as empty.
func (s *Store) load() map[string]string {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		log.Warnf("storage %s unreadable, treating as empty: %v", s.path, err)
		return make(map[string]string)
	}
	if expired || cached == nil {
		return make(map[string]string)
	}
	return cached
}

// Get returns the value stored under key, if any.
func (s *Store) Get(key string) mo.Option[string] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.load()[key]; ok {
		return mo.Some(v)
	}
	return mo.None[string]()
}

// Set stores value under key and flushes the whole map to disk.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	data[key] = value
	return s.cacher.Set(data)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.cacher.Set(data)
}

// Keys lists every stored key.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0)
	for k := range s.load() {
		keys = append(keys, k)
	}
	return keys
}
