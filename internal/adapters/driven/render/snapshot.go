package render

import (
	"sync"
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Ensure Snapshot implements the interface.
var _ driven.Renderer = (*Snapshot)(nil)

// SlotValue is the latest text of one slot.
type SlotValue struct {
	Text      string
	UpdatedAt time.Time

	// Updates counts deliveries since the snapshot was created or reset.
	Updates int
}

// Notification is a user-visible error message.
type Notification struct {
	Message string
	At      time.Time
}

// State is a copy of everything a Snapshot has received.
type State struct {
	Slots map[string]SlotValue

	// LastError is the most recent notification, if any.
	LastError *Notification

	// Errors counts notifications since the snapshot was created or reset.
	Errors int

	// Version increases on every change.
	Version uint64
}

// Snapshot keeps the latest value of each slot. Readers such as the TUI
// and the MCP server poll it instead of being called back.
type Snapshot struct {
	mu        sync.RWMutex
	slots     map[string]SlotValue
	lastError *Notification
	errors    int
	version   uint64
	now       func() time.Time
	tee       driven.Renderer
}

// SnapshotOption configures a Snapshot.
type SnapshotOption func(*Snapshot)

// WithTee forwards every delivery to r as well.
func WithTee(r driven.Renderer) SnapshotOption {
	return func(s *Snapshot) {
		s.tee = r
	}
}

// NewSnapshot creates an empty snapshot renderer.
func NewSnapshot(opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{
		slots: make(map[string]SlotValue),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Display records text as the latest value of slot.
func (s *Snapshot) Display(slot, text string) {
	s.mu.Lock()
	prev := s.slots[slot]
	s.slots[slot] = SlotValue{Text: text, UpdatedAt: s.now(), Updates: prev.Updates + 1}
	s.version++
	s.mu.Unlock()

	if s.tee != nil {
		s.tee.Display(slot, text)
	}
}

// NotifyError records message as the latest notification.
func (s *Snapshot) NotifyError(message string) {
	s.mu.Lock()
	s.lastError = &Notification{Message: message, At: s.now()}
	s.errors++
	s.version++
	s.mu.Unlock()

	if s.tee != nil {
		s.tee.NotifyError(message)
	}
}

// State returns a copy of the current state.
func (s *Snapshot) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make(map[string]SlotValue, len(s.slots))
	for k, v := range s.slots {
		slots[k] = v
	}
	var lastErr *Notification
	if s.lastError != nil {
		n := *s.lastError
		lastErr = &n
	}
	return State{
		Slots:     slots,
		LastError: lastErr,
		Errors:    s.errors,
		Version:   s.version,
	}
}

// Value returns the latest text of slot.
func (s *Snapshot) Value(slot string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[slot]
	return v.Text, ok
}

// DismissError clears the latest notification.
func (s *Snapshot) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastError != nil {
		s.lastError = nil
		s.version++
	}
}

// Reset forgets every slot value and notification.
func (s *Snapshot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = make(map[string]SlotValue)
	s.lastError = nil
	s.errors = 0
	s.version++
}
