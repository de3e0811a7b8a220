package ephemeris

import (
	"sync"
	"time"

	"astrochart/internal/models"
)

// Memo wraps a Source and caches resolved positions per instant.
// Useful for repeated transit requests for the same date. The cache is
// bound to the wrapped source's version at construction, so a version
// change means a new Memo and never a stale hit.
type Memo struct {
	source  Source
	version string

	mu    sync.RWMutex
	cache map[int64]map[models.Body]RawPosition
}

// NewMemo creates a memoizing wrapper around source.
func NewMemo(source Source) *Memo {
	return &Memo{
		source:  source,
		version: source.Version(),
		cache:   make(map[int64]map[models.Body]RawPosition),
	}
}

// Resolve implements Source.
func (m *Memo) Resolve(instant time.Time) (map[models.Body]RawPosition, error) {
	key := canonicalInstant(instant).Unix()

	m.mu.RLock()
	cached, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return copyPositions(cached), nil
	}

	positions, err := m.source.Resolve(instant)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[key] = copyPositions(positions)
	m.mu.Unlock()

	return positions, nil
}

// Version implements Source.
func (m *Memo) Version() string {
	return m.version
}

// Len returns the number of cached instants.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}

func copyPositions(in map[models.Body]RawPosition) map[models.Body]RawPosition {
	out := make(map[models.Body]RawPosition, len(in))
	for body, pos := range in {
		out[body] = pos
	}
	return out
}
