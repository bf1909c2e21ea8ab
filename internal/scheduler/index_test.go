package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-cms/inkwell/internal/models"
)

func TestIndexSetGetRemove(t *testing.T) {
	ix := NewIndex()
	contentID := uuid.New()
	entry := IndexEntry{ScheduleID: uuid.New(), ScheduledAt: time.Now().UTC()}

	if _, ok := ix.Get(models.ActionPublish, contentID); ok {
		t.Fatal("expected empty index")
	}

	ix.Set(models.ActionPublish, contentID, entry)

	got, ok := ix.Get(models.ActionPublish, contentID)
	if !ok {
		t.Fatal("expected entry after Set")
	}
	if got.ScheduleID != entry.ScheduleID {
		t.Fatalf("expected schedule ID %s, got %s", entry.ScheduleID, got.ScheduleID)
	}

	// Same content under the other action is independent.
	if _, ok := ix.Get(models.ActionUnpublish, contentID); ok {
		t.Fatal("expected no entry under the other action")
	}

	ix.Remove(models.ActionPublish, contentID)
	if _, ok := ix.Get(models.ActionPublish, contentID); ok {
		t.Fatal("expected entry removed")
	}
}

func TestIndexSetOverwrites(t *testing.T) {
	ix := NewIndex()
	contentID := uuid.New()

	ix.Set(models.ActionPublish, contentID, IndexEntry{ScheduleID: uuid.New()})
	replacement := IndexEntry{ScheduleID: uuid.New(), ScheduledAt: time.Now().UTC().Add(time.Hour)}
	ix.Set(models.ActionPublish, contentID, replacement)

	got, _ := ix.Get(models.ActionPublish, contentID)
	if got.ScheduleID != replacement.ScheduleID {
		t.Fatalf("expected overwrite, got %s", got.ScheduleID)
	}
	if ix.Len() != 1 {
		t.Fatalf("expected single entry, got %d", ix.Len())
	}
}

func TestIndexRemoveContent(t *testing.T) {
	ix := NewIndex()
	contentID := uuid.New()
	other := uuid.New()

	ix.Set(models.ActionPublish, contentID, IndexEntry{ScheduleID: uuid.New()})
	ix.Set(models.ActionUnpublish, contentID, IndexEntry{ScheduleID: uuid.New()})
	ix.Set(models.ActionPublish, other, IndexEntry{ScheduleID: uuid.New()})

	ix.RemoveContent(contentID)

	if ix.Len() != 1 {
		t.Fatalf("expected only other content's entry, got %d", ix.Len())
	}
	if _, ok := ix.Get(models.ActionPublish, other); !ok {
		t.Fatal("expected other content's entry untouched")
	}
}

func TestIndexReset(t *testing.T) {
	ix := NewIndex()
	ix.Set(models.ActionPublish, uuid.New(), IndexEntry{ScheduleID: uuid.New()})

	now := time.Now().UTC()
	entries := []*models.ScheduleEntry{
		models.NewScheduleEntry(uuid.New(), models.ActionPublish, now.Add(time.Hour), ""),
		models.NewScheduleEntry(uuid.New(), models.ActionUnpublish, now.Add(2*time.Hour), ""),
		{ID: uuid.New(), ContentID: uuid.New(), Action: models.ScheduleAction("bogus"), ScheduledAt: now},
	}

	loaded := ix.Reset(entries)
	if loaded != 2 {
		t.Fatalf("expected 2 loaded, got %d", loaded)
	}
	if ix.Len() != 2 {
		t.Fatalf("expected pre-reset entries cleared, got %d", ix.Len())
	}

	first, ok := ix.Get(models.ActionPublish, entries[0].ContentID)
	if !ok || first.ScheduleID != entries[0].ID {
		t.Fatalf("expected first entry loaded, got %+v ok=%v", first, ok)
	}
}
