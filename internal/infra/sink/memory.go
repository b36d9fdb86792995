package sink

import (
	"context"
	"slices"
	"sync"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

// Memory holds the reminders currently on screen, in the order they were
// first rendered. The HTTP layer serves them to the dashboard page.
type Memory struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.ReminderPayload
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]domain.ReminderPayload)}
}

func (m *Memory) RenderReminder(_ context.Context, id string, payload domain.ReminderPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		m.order = append(m.order, id)
	}
	m.items[id] = payload
	return nil
}

func (m *Memory) RemoveReminder(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return nil
	}
	delete(m.items, id)
	m.order = slices.DeleteFunc(m.order, func(existing string) bool { return existing == id })
	return nil
}

func (m *Memory) ClearAllReminders(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = nil
	clear(m.items)
	return nil
}

func (m *Memory) List() []domain.Reminder {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Reminder, 0, len(m.order))
	for _, id := range m.order {
		payload := m.items[id]
		out = append(out, domain.Reminder{ID: id, Payload: payload})
	}
	return out
}
