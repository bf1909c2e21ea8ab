package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-cms/inkwell/internal/models"
)

// IndexEntry is the cached metadata for one pending schedule.
type IndexEntry struct {
	ScheduleID  uuid.UUID
	ScheduledAt time.Time
}

// Index is an in-memory map of pending schedules, keyed per action by content
// ID. It is a cache over the schedule store, rebuilt from it on every engine
// start and kept consistent by every manager mutation; the store remains
// authoritative.
type Index struct {
	mu      sync.RWMutex
	entries map[models.ScheduleAction]map[uuid.UUID]IndexEntry
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	ix := &Index{}
	ix.clearLocked()
	return ix
}

func (ix *Index) clearLocked() {
	ix.entries = map[models.ScheduleAction]map[uuid.UUID]IndexEntry{
		models.ActionPublish:   make(map[uuid.UUID]IndexEntry),
		models.ActionUnpublish: make(map[uuid.UUID]IndexEntry),
	}
}

// Reset clears the index and loads the given entries, returning the number loaded.
func (ix *Index) Reset(entries []*models.ScheduleEntry) int {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.clearLocked()
	loaded := 0
	for _, e := range entries {
		if !models.IsValidScheduleAction(e.Action) {
			continue
		}
		ix.entries[e.Action][e.ContentID] = IndexEntry{
			ScheduleID:  e.ID,
			ScheduledAt: e.ScheduledAt,
		}
		loaded++
	}
	return loaded
}

// Set records (or overwrites) the pending schedule for a (action, content) pair.
func (ix *Index) Set(action models.ScheduleAction, contentID uuid.UUID, entry IndexEntry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if m, ok := ix.entries[action]; ok {
		m[contentID] = entry
	}
}

// Get returns the pending schedule for a (action, content) pair, if any.
func (ix *Index) Get(action models.ScheduleAction, contentID uuid.UUID) (IndexEntry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	m, ok := ix.entries[action]
	if !ok {
		return IndexEntry{}, false
	}
	entry, ok := m[contentID]
	return entry, ok
}

// Remove deletes the entry for a (action, content) pair, if present.
func (ix *Index) Remove(action models.ScheduleAction, contentID uuid.UUID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if m, ok := ix.entries[action]; ok {
		delete(m, contentID)
	}
}

// RemoveContent deletes the entries for both actions of a content entity.
func (ix *Index) RemoveContent(contentID uuid.UUID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, m := range ix.entries {
		delete(m, contentID)
	}
}

// Len returns the total number of pending entries across both actions.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	n := 0
	for _, m := range ix.entries {
		n += len(m)
	}
	return n
}
