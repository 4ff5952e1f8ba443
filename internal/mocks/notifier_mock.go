package mocks

import (
	"sync"

	"github.com/realchief/RenderShotPanel/internal/notify"
)

// NotifierMock records dispatched events for assertions. Dispatch is
// called from request goroutines in handler tests, hence the lock.
type NotifierMock struct {
	mu     sync.Mutex
	Events []notify.Event
}

func (m *NotifierMock) Dispatch(events ...notify.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, events...)
}

// Named returns every recorded event with the given name.
func (m *NotifierMock) Named(name string) []notify.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []notify.Event
	for _, ev := range m.Events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// Reset clears the recorded events.
func (m *NotifierMock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = nil
}
