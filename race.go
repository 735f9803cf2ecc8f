// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync/atomic"

// AmbWith races the receiver against another task. The first branch to
// complete wins; the loser is canceled and its signal absorbed.
func (t Task[A]) AmbWith(other Task[A]) Task[A] {
	return Amb(t, other)
}

// Amb races the given tasks. Every branch starts on its own scheduler
// runnable under its own child handle; the first branch to complete
// CAS-flips the gate, cancels all siblings, and forwards its outcome.
// Losing branches are silently absorbed.
//
// Amb requires a non-empty input and panics otherwise — an empty race
// is a programmer error.
func Amb[A any](tasks ...Task[A]) Task[A] {
	if len(tasks) == 0 {
		panic("task: Amb requires at least one task")
	}
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		gate := new(atomic.Bool)
		conns := make([]*MultiAssignment, len(tasks))
		comp := NewComposite()
		for i := range tasks {
			conns[i] = NewMultiAssignment()
			comp.Add(conns[i])
		}
		active.Assign(comp)
		for i, branch := range tasks {
			conn := conns[i]
			branch := branch
			// The winner removes itself before canceling the composite,
			// then rebinds the activation to its own handle so the
			// losing handles become garbage.
			win := func() bool {
				if !gate.CompareAndSwap(false, true) {
					return false
				}
				comp.Remove(conn)
				comp.Cancel()
				active.Assign(conn)
				return true
			}
			startAsync(s, conn, func(fid frameID) {
				branch.unsafeRun(s, conn, fid, sink[A]{
					onSuccess: func(fid frameID, a A) {
						if !win() {
							return
						}
						out.onSuccess(fid, a)
					},
					onError: func(fid frameID, err error) {
						if !win() {
							return
						}
						out.onError(fid, err)
					},
				})
			})
		}
	}}
}
