// Package history keeps bounded undo stacks, one per page.
//
// A Manager is owned by whoever owns the page list; it is not safe for
// concurrent use. Structural page edits (insert, delete, reorder) must be
// mirrored with AddStack, RemoveStack and MoveStack.
package history

import (
	"fmt"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
)

// MaxDepth is the number of undo steps kept per page.
const MaxDepth = 30

// Snapshot is the state of a page taken right before a change.
type Snapshot struct {
	Description string
	Drawables   []*adplan.Drawable
}

// Manager holds one undo stack per page.
type Manager struct {
	depth  int
	stacks []*stack
	active int
}

// NewManager creates a manager with a single stack and MaxDepth.
func NewManager() *Manager {
	return NewManagerDepth(MaxDepth)
}

// NewManagerDepth creates a manager with a custom stack depth.
func NewManagerDepth(depth int) *Manager {
	if depth < 1 {
		depth = 1
	}
	m := &Manager{depth: depth}
	m.stacks = []*stack{newStack(depth)}
	return m
}

// RecordAction stores a deep copy of current on the active page's stack.
// Call it right before the change described by description is applied.
func (m *Manager) RecordAction(current []*adplan.Drawable, description string) {
	snap := Snapshot{
		Description: description,
		Drawables:   adplan.CloneAll(current),
	}
	if m.stacks[m.active].push(snap) {
		logging.Debug("Evict oldest undo step of page %d", m.active)
	}
}

// Undo removes and returns the most recent snapshot of the active page.
// Returns false if there is nothing to undo.
func (m *Manager) Undo() (Snapshot, bool) {
	return m.stacks[m.active].pop()
}

// CanUndo reports whether the active page has undo steps.
func (m *Manager) CanUndo() bool {
	return m.stacks[m.active].size > 0
}

// Peek returns the description of the next undo step.
func (m *Manager) Peek() (string, bool) {
	s, ok := m.stacks[m.active].peek()
	return s.Description, ok
}

// Len returns the number of undo steps for the active page.
func (m *Manager) Len() int {
	return m.stacks[m.active].size
}

// Stacks returns the number of page stacks.
func (m *Manager) Stacks() int {
	return len(m.stacks)
}

// ActivePage returns the index of the page that receives record and undo
// calls.
func (m *Manager) ActivePage() int {
	return m.active
}

// SetActivePage switches the target stack. Missing stacks up to index are
// created.
func (m *Manager) SetActivePage(index int) error {
	if index < 0 {
		return fmt.Errorf("invalid page index %d", index)
	}
	for len(m.stacks) <= index {
		m.stacks = append(m.stacks, newStack(m.depth))
	}
	m.active = index
	return nil
}

// AddStack inserts an empty stack at index, for a page inserted there.
func (m *Manager) AddStack(index int) error {
	if index < 0 || index > len(m.stacks) {
		return fmt.Errorf("invalid page index %d for %d stacks", index, len(m.stacks))
	}

	m.stacks = append(m.stacks, nil)
	copy(m.stacks[index+1:], m.stacks[index:])
	m.stacks[index] = newStack(m.depth)

	if index <= m.active {
		m.active++
	}
	return nil
}

// RemoveStack drops the stack at index, for a deleted page.
// The last remaining stack is cleared instead of removed.
func (m *Manager) RemoveStack(index int) error {
	if index < 0 || index >= len(m.stacks) {
		return fmt.Errorf("invalid page index %d for %d stacks", index, len(m.stacks))
	}

	if len(m.stacks) == 1 {
		m.stacks[0].clear()
		return nil
	}

	copy(m.stacks[index:], m.stacks[index+1:])
	m.stacks[len(m.stacks)-1] = nil
	m.stacks = m.stacks[:len(m.stacks)-1]

	if m.active > index || m.active >= len(m.stacks) {
		m.active--
	}
	return nil
}

// MoveStack moves the stack at from to position to, for a reordered page.
// The active stack follows its page.
func (m *Manager) MoveStack(from, to int) error {
	n := len(m.stacks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("invalid move %d -> %d for %d stacks", from, to, n)
	}
	if from == to {
		return nil
	}

	s := m.stacks[from]
	if from < to {
		copy(m.stacks[from:to], m.stacks[from+1:to+1])
	} else {
		copy(m.stacks[to+1:from+1], m.stacks[to:from])
	}
	m.stacks[to] = s

	switch {
	case m.active == from:
		m.active = to
	case from < m.active && m.active <= to:
		m.active--
	case to <= m.active && m.active < from:
		m.active++
	}
	return nil
}

// Clear drops all undo steps of all pages.
func (m *Manager) Clear() {
	for _, s := range m.stacks {
		s.clear()
	}
}
