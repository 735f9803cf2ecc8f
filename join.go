// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync/atomic"

// Pair is a tuple of two values, the result shape of [Zip].
type Pair[A, B any] struct {
	First  A
	Second B
}

// joinCell is the shared state of a binary join: nil for neither
// arrived, otherwise the first arrival tagged by side.
type joinCell[A, B any] struct {
	isLeft bool
	a      A
	b      B
}

// Map2 joins two tasks running in parallel and combines their results
// with f. Each branch starts on its own scheduler runnable under its
// own child handle. The pairing cell is advanced by CAS, retried in a
// loop on failure: the only competing write is the sibling's
// arrival, which transitions the next observation to the
// sibling-has-arrived case.
//
// The first error wins the gate, cancels the sibling, and is delivered;
// a second error has no surviving listener and goes to the reporter. A
// branch signaling twice is a protocol violation and delivers
// [IllegalStateError].
func Map2[A, B, C any](ta Task[A], tb Task[B], f func(A, B) C) Task[C] {
	return Task[C]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[C]) {
		cell := new(atomic.Pointer[joinCell[A, B]])
		errGate := new(atomic.Bool)
		left := NewMultiAssignment()
		right := NewMultiAssignment()
		comp := NewComposite(left, right)
		active.Assign(comp)
		deliver := func(fid frameID, a A, b B) {
			c, err := protect(func() C { return f(a, b) })
			if err != nil {
				out.onError(fid, err)
				return
			}
			out.onSuccess(fid, c)
		}
		onError := func(fid frameID, err error) {
			if !errGate.CompareAndSwap(false, true) {
				s.ReportFailure(err)
				return
			}
			comp.Cancel()
			out.onError(fid, err)
		}
		startAsync(s, left, func(fid frameID) {
			ta.unsafeRun(s, left, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					for {
						cur := cell.Load()
						if cur == nil {
							if cell.CompareAndSwap(nil, &joinCell[A, B]{isLeft: true, a: a}) {
								return
							}
							continue
						}
						if cur.isLeft {
							out.onError(fid, IllegalStateError("join branch signaled twice"))
							return
						}
						deliver(fid, a, cur.b)
						return
					}
				},
				onError: onError,
			})
		})
		startAsync(s, right, func(fid frameID) {
			tb.unsafeRun(s, right, fid, sink[B]{
				onSuccess: func(fid frameID, b B) {
					for {
						cur := cell.Load()
						if cur == nil {
							if cell.CompareAndSwap(nil, &joinCell[A, B]{isLeft: false, b: b}) {
								return
							}
							continue
						}
						if !cur.isLeft {
							out.onError(fid, IllegalStateError("join branch signaled twice"))
							return
						}
						deliver(fid, cur.a, b)
						return
					}
				},
				onError: onError,
			})
		})
	}}
}

// Zip joins two tasks running in parallel, pairing their results.
func Zip[A, B any](ta Task[A], tb Task[B]) Task[Pair[A, B]] {
	return Map2(ta, tb, func(a A, b B) Pair[A, B] {
		return Pair[A, B]{First: a, Second: b}
	})
}
