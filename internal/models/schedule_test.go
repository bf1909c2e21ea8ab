package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIsValidScheduleAction(t *testing.T) {
	for _, action := range ScheduleActions() {
		if !IsValidScheduleAction(action) {
			t.Fatalf("expected %s to be valid", action)
		}
	}
	if IsValidScheduleAction(ScheduleAction("archive")) {
		t.Fatal("expected unknown action to be invalid")
	}
}

func TestScheduleActionTargetStatus(t *testing.T) {
	if got := ActionPublish.TargetStatus(); got != StatusPublished {
		t.Fatalf("expected publish to target published, got %s", got)
	}
	if got := ActionUnpublish.TargetStatus(); got != StatusDraft {
		t.Fatalf("expected unpublish to target draft, got %s", got)
	}
}

func TestNewScheduleEntry(t *testing.T) {
	contentID := uuid.New()
	at := time.Now().UTC().Add(time.Hour)

	entry := NewScheduleEntry(contentID, ActionPublish, at, "launch day")

	if entry.ID == uuid.Nil {
		t.Fatal("expected generated ID")
	}
	if entry.ContentID != contentID {
		t.Fatalf("expected content ID %s, got %s", contentID, entry.ContentID)
	}
	if !entry.ScheduledAt.Equal(at) {
		t.Fatalf("expected scheduled time %v, got %v", at, entry.ScheduledAt)
	}
	if entry.Note != "launch day" {
		t.Fatalf("expected note, got %q", entry.Note)
	}
}

func TestScheduleEntryIsDue(t *testing.T) {
	now := time.Now().UTC()
	entry := NewScheduleEntry(uuid.New(), ActionPublish, now, "")

	if !entry.IsDue(now) {
		t.Fatal("expected entry due at its exact scheduled time")
	}
	if !entry.IsDue(now.Add(time.Minute)) {
		t.Fatal("expected entry due after its scheduled time")
	}
	if entry.IsDue(now.Add(-time.Second)) {
		t.Fatal("expected entry not due before its scheduled time")
	}
}
