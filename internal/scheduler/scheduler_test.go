package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-cms/inkwell/internal/models"
)

// mockStore implements Store over in-memory maps for testing.
type mockStore struct {
	mu        sync.Mutex
	contents  map[uuid.UUID]*models.Content
	schedules map[uuid.UUID]*models.ScheduleEntry

	getAllErr        error
	getDueErr        error
	replaceErr       error
	updateContentErr map[uuid.UUID]error
	deleteErr        error
}

func newMockStore() *mockStore {
	return &mockStore{
		contents:         make(map[uuid.UUID]*models.Content),
		schedules:        make(map[uuid.UUID]*models.ScheduleEntry),
		updateContentErr: make(map[uuid.UUID]error),
	}
}

func (m *mockStore) GetAllSchedules(_ context.Context) ([]*models.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	var entries []*models.ScheduleEntry
	for _, e := range m.schedules {
		copied := *e
		entries = append(entries, &copied)
	}
	return entries, nil
}

func (m *mockStore) GetDueSchedules(_ context.Context, action models.ScheduleAction, now time.Time) ([]*models.DueSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getDueErr != nil {
		return nil, m.getDueErr
	}
	var due []*models.DueSchedule
	for _, e := range m.schedules {
		if e.Action != action || e.ScheduledAt.After(now) {
			continue
		}
		d := &models.DueSchedule{Entry: *e}
		if content, ok := m.contents[e.ContentID]; ok {
			copied := *content
			d.Content = &copied
		}
		due = append(due, d)
	}
	return due, nil
}

func (m *mockStore) GetScheduleByContentAndAction(_ context.Context, contentID uuid.UUID, action models.ScheduleAction) (*models.ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.schedules {
		if e.ContentID == contentID && e.Action == action {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ReplaceSchedule(_ context.Context, entry *models.ScheduleEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	for id, e := range m.schedules {
		if e.ContentID == entry.ContentID && e.Action == entry.Action {
			delete(m.schedules, id)
		}
	}
	copied := *entry
	m.schedules[entry.ID] = &copied
	return nil
}

func (m *mockStore) UpdateScheduleTime(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.schedules[id]; ok {
		e.ScheduledAt = at
	}
	return nil
}

func (m *mockStore) DeleteSchedule(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.schedules, id)
	return nil
}

func (m *mockStore) DeleteSchedulesByContent(_ context.Context, contentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.schedules {
		if e.ContentID == contentID {
			delete(m.schedules, id)
		}
	}
	return nil
}

func (m *mockStore) GetContentByID(_ context.Context, id uuid.UUID) (*models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if content, ok := m.contents[id]; ok {
		copied := *content
		return &copied, nil
	}
	return nil, nil
}

func (m *mockStore) UpdateContent(_ context.Context, content *models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.updateContentErr[content.ID]; ok {
		return err
	}
	copied := *content
	m.contents[content.ID] = &copied
	return nil
}

func (m *mockStore) addContent(content *models.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[content.ID] = content
}

func (m *mockStore) addSchedule(entry *models.ScheduleEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[entry.ID] = entry
}

func (m *mockStore) scheduleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.schedules)
}

func (m *mockStore) contentStatus(id uuid.UUID) models.ContentStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if content, ok := m.contents[id]; ok {
		return content.Status
	}
	return ""
}

var errStore = errors.New("store unavailable")
