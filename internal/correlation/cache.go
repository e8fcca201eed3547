package correlation

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/marketmood/marketmood/pkg/timeseries"
)

// Key identifies a memoized sweep: the fingerprints of both input series and
// the lag bound they were analyzed with.
type Key struct {
	SeriesA string
	SeriesB string
	MaxLag  int
}

// Cache memoizes sweep results so repeated dashboard requests over the same
// series pair do not recompute the sweep. It is safe for concurrent use. The
// engine itself stays pure; callers opt in to caching.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]SweepResult
}

// NewCache constructs an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]SweepResult)}
}

// Get returns the memoized result for key, if present.
func (c *Cache) Get(key Key) (SweepResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.entries[key]
	return result, ok
}

// Put stores a result under key, replacing any previous entry.
func (c *Cache) Put(key Key, result SweepResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
}

// Len returns the number of memoized entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Analyze returns the memoized sweep for the pair when available, otherwise
// it runs the engine and memoizes the result. The boolean reports a cache hit.
func (c *Cache) Analyze(a, b []timeseries.Point, maxLag int) (SweepResult, bool) {
	key := Key{
		SeriesA: Fingerprint(a),
		SeriesB: Fingerprint(b),
		MaxLag:  maxLag,
	}
	if result, ok := c.Get(key); ok {
		return result, true
	}
	result := Analyze(a, b, maxLag)
	c.Put(key, result)
	return result, false
}

// Fingerprint derives a stable identity for a point series from its field
// names and values. Two series with identical content share a fingerprint.
func Fingerprint(points []timeseries.Point) string {
	h := fnv.New64a()
	for _, p := range points {
		for _, f := range p.Fields {
			_, _ = h.Write([]byte(f.Name))
			_, _ = h.Write([]byte{0})
			value, err := json.Marshal(f.Value)
			if err != nil {
				value = []byte(fmt.Sprintf("%v", f.Value))
			}
			_, _ = h.Write(value)
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%d:%016x", len(points), h.Sum64())
}
