// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"sync"
	"sync/atomic"
)

// Cancelable is a handle representing the right to abort in-flight work.
// Cancel is idempotent and safe for concurrent use.
type Cancelable interface {
	Cancel()
}

// BoolCancelable is a Cancelable that also reports whether it has been
// canceled. IsCanceled is monotonic: once true, it never reports false.
type BoolCancelable interface {
	Cancelable
	IsCanceled() bool
}

// NopCancelable is the empty handle. Canceling it does nothing.
var NopCancelable Cancelable = nopCancelable{}

type nopCancelable struct{}

func (nopCancelable) Cancel() { return }

// NewCancelable returns a handle that invokes f at most once, on the
// first Cancel. A nil f yields a pure boolean handle.
func NewCancelable(f func()) BoolCancelable {
	return &actionCancelable{action: f}
}

type actionCancelable struct {
	canceled atomic.Bool
	action   func()
}

func (c *actionCancelable) Cancel() {
	if c.canceled.CompareAndSwap(false, true) && c.action != nil {
		c.action()
	}
}

func (c *actionCancelable) IsCanceled() bool {
	return c.canceled.Load()
}

// MultiAssignment is a cancelable slot whose inner handle can be rebound
// over time. Assigning replaces the current inner without canceling it;
// the previous binding is canceled only by canceling the outer handle.
// Assigning to an already-canceled slot cancels the assignee immediately.
//
// The run loop allocates one MultiAssignment per RunAsync activation and
// rebinds it as execution moves through timers, races, and forks.
type MultiAssignment struct {
	canceled atomic.Bool
	mu       sync.Mutex
	current  Cancelable
}

// NewMultiAssignment returns an empty, uncanceled slot.
func NewMultiAssignment() *MultiAssignment {
	return &MultiAssignment{}
}

// IsCanceled reports whether the slot has been canceled.
func (m *MultiAssignment) IsCanceled() bool {
	return m.canceled.Load()
}

// Assign rebinds the slot to c. If the slot is already canceled, c is
// canceled immediately instead.
func (m *MultiAssignment) Assign(c Cancelable) {
	m.mu.Lock()
	if m.canceled.Load() {
		m.mu.Unlock()
		if c != nil {
			c.Cancel()
		}
		return
	}
	m.current = c
	m.mu.Unlock()
}

// Cancel cancels the slot and the currently-bound inner handle.
// Subsequent calls are no-ops.
func (m *MultiAssignment) Cancel() {
	m.mu.Lock()
	if !m.canceled.CompareAndSwap(false, true) {
		m.mu.Unlock()
		return
	}
	cur := m.current
	m.current = nil
	m.mu.Unlock()
	if cur != nil {
		cur.Cancel()
	}
}

// Composite is a cancelable set of child handles. Canceling the
// composite cancels every child; removing a child drops the composite's
// responsibility for it. Adding to an already-canceled composite cancels
// the addition immediately.
type Composite struct {
	canceled atomic.Bool
	mu       sync.Mutex
	children map[Cancelable]struct{}
}

// NewComposite returns a composite owning the given children.
func NewComposite(children ...Cancelable) *Composite {
	c := &Composite{children: make(map[Cancelable]struct{}, len(children))}
	for _, child := range children {
		c.children[child] = struct{}{}
	}
	return c
}

// IsCanceled reports whether the composite has been canceled.
func (c *Composite) IsCanceled() bool {
	return c.canceled.Load()
}

// Add takes ownership of child. If the composite is already canceled,
// child is canceled immediately instead.
func (c *Composite) Add(child Cancelable) {
	c.mu.Lock()
	if c.canceled.Load() {
		c.mu.Unlock()
		child.Cancel()
		return
	}
	if c.children == nil {
		c.children = make(map[Cancelable]struct{})
	}
	c.children[child] = struct{}{}
	c.mu.Unlock()
}

// Remove releases child from the composite without canceling it.
func (c *Composite) Remove(child Cancelable) {
	c.mu.Lock()
	delete(c.children, child)
	c.mu.Unlock()
}

// Cancel cancels the composite and every owned child.
// Subsequent calls are no-ops.
func (c *Composite) Cancel() {
	c.mu.Lock()
	if !c.canceled.CompareAndSwap(false, true) {
		c.mu.Unlock()
		return
	}
	children := c.children
	c.children = nil
	c.mu.Unlock()
	for child := range children {
		child.Cancel()
	}
}
