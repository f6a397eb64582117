package synth

import (
	"container/list"
	"sync"
)

type toneKey struct {
	note       int
	durationMS int
}

type cacheEntry struct {
	key toneKey
	buf *ToneBuffer
}

// ToneCache memoizes rendered tones by (note, duration). Each distinct key
// is rendered exactly once for the cache lifetime; repeated lookups return
// the same buffer. With capacity 0 the cache grows without bound, which is
// fine for the keyboard's small key space (25 notes x 2 durations). A
// positive capacity enables recency eviction for larger key spaces.
type ToneCache struct {
	voice    Voice
	capacity int

	mu      sync.Mutex
	entries map[toneKey]*list.Element
	order   *list.List // front = most recently used
}

// NewToneCache creates a cache rendering through the given voice.
// capacity <= 0 means unbounded.
func NewToneCache(voice Voice, capacity int) *ToneCache {
	return &ToneCache{
		voice:    voice,
		capacity: capacity,
		entries:  make(map[toneKey]*list.Element),
		order:    list.New(),
	}
}

// GetOrRender returns the cached buffer for (note, durationMS), rendering
// it through the voice on first use. Render failures are not cached.
func (c *ToneCache) GetOrRender(note, durationMS int) (*ToneBuffer, error) {
	key := toneKey{note: note, durationMS: durationMS}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).buf, nil
	}

	buf, err := c.voice.RenderTone(note, durationMS)
	if err != nil {
		return nil, err
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, buf: buf})

	if c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}

	return buf, nil
}

// Len returns the number of cached tones.
func (c *ToneCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
