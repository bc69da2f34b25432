// internal/mode/manager.go
package mode

import (
	"fmt"

	"github.com/jubalh/vimb/internal/event"
	"github.com/jubalh/vimb/internal/logger"
)

// Manager owns the registered mode handlers and tracks the active one.
// All methods must be called from the input-handling task; the manager
// provides no internal locking.
type Manager struct {
	handlers map[ID]Handler
	current  Handler
	flags    Flags
	events   *event.Manager
}

// NewManager creates a manager with no registered modes.
func NewManager(events *event.Manager) *Manager {
	return &Manager{
		handlers: make(map[ID]Handler),
		events:   events,
	}
}

// Register adds a mode handler. Registering the same id twice is an error.
func (m *Manager) Register(h Handler) error {
	if h == nil {
		return fmt.Errorf("mode: cannot register nil handler")
	}
	if _, exists := m.handlers[h.ID()]; exists {
		return fmt.Errorf("mode: handler for mode '%c' already registered", h.ID())
	}
	m.handlers[h.ID()] = h
	return nil
}

// Enter switches to the given mode, resetting the transient flags.
// Entering the already active mode re-runs its Enter hook, matching the
// behavior of re-entering normal mode to abort a pending command.
func (m *Manager) Enter(id ID) error {
	next, ok := m.handlers[id]
	if !ok {
		return fmt.Errorf("mode: no handler registered for mode '%c'", id)
	}
	if m.current != nil {
		m.current.Leave()
	}
	m.current = next
	m.flags = 0
	next.Enter()
	if m.events != nil {
		m.events.Dispatch(event.TypeModeChanged, event.ModeChangedData{Mode: byte(id)})
	}
	logger.DebugTagf("mode", "entered mode %s", id)
	return nil
}

// Current returns the id of the active mode.
func (m *Manager) Current() ID {
	if m.current == nil {
		return Normal
	}
	return m.current.ID()
}

// HandleKey hands one resolved key to the active mode's dispatcher.
func (m *Manager) HandleKey(key int) Result {
	if m.current == nil {
		return ResultError
	}
	return m.current.KeyPress(key)
}

// SetFlag raises a transient flag on the active mode.
func (m *Manager) SetFlag(f Flags) { m.flags |= f }

// ClearFlag lowers a transient flag on the active mode.
func (m *Manager) ClearFlag(f Flags) { m.flags &^= f }

// HasFlag reports whether a transient flag is raised.
func (m *Manager) HasFlag(f Flags) bool { return m.flags&f != 0 }
