package pipeline

import (
	"strconv"
	"sync"
	"time"

	"github.com/poiesic/medlex/core"
	"golang.org/x/sync/singleflight"
)

// DefaultMemoWindow is how long memoized inference results stay fresh.
const DefaultMemoWindow = 5 * time.Minute

// memoCache memoizes inference results for a short window with an
// at-most-one-concurrent-inference-per-key policy: concurrent requests for
// the same key share one in-flight call instead of issuing duplicates.
type memoCache struct {
	window time.Duration
	group  singleflight.Group

	mu      sync.Mutex
	entries map[core.ID]memoEntry
}

type memoEntry struct {
	value   any
	expires time.Time
}

func newMemoCache(window time.Duration) *memoCache {
	return &memoCache{
		window:  window,
		entries: make(map[core.ID]memoEntry),
	}
}

// memoKey derives a cache key from the input tuple. Fields are length-prefixed
// so ("ab","c") and ("a","bc") never collide.
func memoKey(parts ...string) core.ID {
	var b []byte
	for _, p := range parts {
		b = append(b, strconv.Itoa(len(p))...)
		b = append(b, ':')
		b = append(b, p...)
	}
	return core.IDFromContent(string(b))
}

// do returns the cached value for key, or runs fn once to produce it.
// Errors are never cached; a failed inference is retried by the next caller.
func (m *memoCache) do(key core.ID, fn func() (any, error)) (any, error) {
	if value, ok := m.get(key); ok {
		return value, nil
	}

	value, err, _ := m.group.Do(strconv.FormatUint(uint64(key), 16), func() (any, error) {
		// Another waiter may have populated the cache while we queued
		if value, ok := m.get(key); ok {
			return value, nil
		}

		value, err := fn()
		if err != nil {
			return nil, err
		}
		m.put(key, value)
		return value, nil
	})
	return value, err
}

func (m *memoCache) get(key core.ID) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (m *memoCache) put(key core.ID, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Opportunistically drop expired entries to bound growth
	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, k)
		}
	}

	m.entries[key] = memoEntry{
		value:   value,
		expires: now.Add(m.window),
	}
}
