package lookup

import (
	"sync"

	"github.com/go-git/go-billy/v5"
)

// Cache holds the per-session caches used by an [Engine]. The zero value is
// ready to use.
type Cache struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{sessions: make(map[string]*Session)}
}

// Session returns the cache for id, creating it on first access.
func (c *Cache) Session(id string) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessions == nil {
		c.sessions = make(map[string]*Session)
	}

	s, ok := c.sessions[id]
	if !ok {
		s = &Session{id: id}
		c.sessions[id] = s
	}

	return s
}

// Discard drops both cache tiers of session id. A later access starts from an
// empty session.
func (c *Cache) Discard(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.sessions, id)
}

// Sessions returns the number of live sessions.
func (c *Cache) Sessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.sessions)
}

// Session is the cache scope of a single host or environment. It has a file
// tier (path to parsed data file) and a resolution tier (key to resolved
// value). Both tiers only ever hold successful results.
type Session struct {
	id       string
	files    sync.Map // path -> *fileEntry
	resolved sync.Map // key -> Value
}

// fileEntry parses its file exactly once for all concurrent callers.
type fileEntry struct {
	once sync.Once
	file *DataFile
	err  error
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// File returns the parsed data file at p, loading it from fsys on first
// access. Failed loads are not retained.
func (s *Session) File(
	fsys billy.Filesystem,
	p string,
	format Format,
) (file *DataFile, cached bool, err error) {
	value, cached := s.files.LoadOrStore(p, new(fileEntry))
	entry, _ := value.(*fileEntry)

	entry.once.Do(func() {
		entry.file, entry.err = Load(fsys, p, format)
	})

	if entry.err != nil {
		s.files.CompareAndDelete(p, entry)

		return nil, false, entry.err
	}

	return entry.file, cached, nil
}

// Resolved returns a copy of the cached resolution of key.
func (s *Session) Resolved(key string) (Value, bool) {
	value, ok := s.resolved.Load(key)
	if !ok {
		return Value{}, false
	}

	v, ok := value.(Value)

	return v.Clone(), ok
}

// Store caches a copy of the resolution of key and returns a copy of the
// cached value. If another caller stored key first, its value is kept.
// Cached values are never exposed to callers, so they cannot be modified.
func (s *Session) Store(key string, v Value) Value {
	actual, _ := s.resolved.LoadOrStore(key, v.Clone())

	stored, ok := actual.(Value)
	if !ok {
		return v
	}

	return stored.Clone()
}
