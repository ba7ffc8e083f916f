package cellgrid

import (
	"container/list"

	"github.com/haldane/glterm/screen"
)

// selectionKey is the hashable stand-in for an optional selection range.
// Storing it (rather than a pointer or a screen.Selection) in the row-cache
// key means toggling selection does not evict the unselected rendering —
// both coexist in the cache.
type selectionKey struct {
	active         bool
	startX, startY int
	endX, endY     int
}

func keyForSelection(sel *screen.Selection, row int) selectionKey {
	if sel == nil || !sel.ContainsRow(row) {
		return selectionKey{}
	}
	return selectionKey{active: true, startX: sel.StartX, startY: sel.StartY, endX: sel.EndX, endY: sel.EndY}
}

type rowCacheKey struct {
	sel    selectionKey
	screen screen.ScreenTag
	rowID  screen.RowID
}

// rowCache is a row-granularity LRU keyed on (selection, active screen,
// row id). Values are copied GPUCell lists with GridRow normalized to 0.
type rowCache struct {
	capacity int
	ll       *list.List // front = most recently used
	index    map[rowCacheKey]*list.Element
}

type rowCacheEntry struct {
	key   rowCacheKey
	cells []GPUCell
}

// newRowCache sizes the cache at rows*10, floored at 80, unless override is
// positive, in which case it wins outright — a deployer who has measured
// their own working set gets to say so.
func newRowCache(rows, override int) *rowCache {
	cap := rows * 10
	if cap < 80 {
		cap = 80
	}
	if override > 0 {
		cap = override
	}
	return &rowCache{
		capacity: cap,
		ll:       list.New(),
		index:    make(map[rowCacheKey]*list.Element, cap),
	}
}

// get returns a defensive copy of the cached cell list, or (nil, false).
func (c *rowCache) get(key rowCacheKey) ([]GPUCell, bool) {
	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	entry := el.Value.(*rowCacheEntry)
	out := make([]GPUCell, len(entry.cells))
	copy(out, entry.cells)
	return out, true
}

// put inserts or refreshes a row's cell list, evicting the least-recently
// used entry if capacity is exceeded. The evicted list is simply dropped —
// Go's GC reclaims it, matching the "no dangling allocations"
// invariant without any explicit free.
func (c *rowCache) put(key rowCacheKey, cells []GPUCell) {
	if el, ok := c.index[key]; ok {
		c.ll.MoveToFront(el)
		entry := el.Value.(*rowCacheEntry)
		entry.cells = append(entry.cells[:0], cells...)
		normalizeGridRow(entry.cells)
		return
	}
	stored := make([]GPUCell, len(cells))
	copy(stored, cells)
	normalizeGridRow(stored)
	el := c.ll.PushFront(&rowCacheEntry{key: key, cells: stored})
	c.index[key] = el
	for len(c.index) > c.capacity {
		back := c.ll.Back()
		if back == nil {
			break
		}
		c.ll.Remove(back)
		delete(c.index, back.Value.(*rowCacheEntry).key)
	}
}

// normalizeGridRow zeroes GridRow on a stored cell list; a cache hit
// rewrites it with the row's current viewport y.
func normalizeGridRow(cells []GPUCell) {
	for i := range cells {
		cells[i].GridRow = 0
	}
}

// len reports the number of cached rows, used by tests that verify
// eviction behavior without an allocator counter.
func (c *rowCache) len() int {
	return len(c.index)
}
