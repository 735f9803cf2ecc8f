// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync/atomic"

// Callback is a two-arm completion sink. Exactly one arm is invoked,
// at most once per run. A nil arm drops the signal; a dropped error is
// handed to the scheduler's failure reporter rather than lost.
type Callback[A any] struct {
	// OnSuccess receives the computed value.
	OnSuccess func(A)

	// OnError receives the failure.
	OnError func(error)
}

// safeCallback wraps cb with a single-shot gate enforcing at-most-once
// delivery at the RunAsync boundary. A second success is dropped; a
// second error is reported, because an error with no surviving listener
// must not vanish. Panics raised by the listener itself are recovered
// and reported — there is nobody left to deliver them to.
//
// Internal combinators assume their installed sinks are called
// correctly and do not double-wrap.
func safeCallback[A any](s Scheduler, cb Callback[A]) Callback[A] {
	done := new(atomic.Bool)
	return Callback[A]{
		OnSuccess: func(a A) {
			if !done.CompareAndSwap(false, true) {
				return
			}
			defer reportListenerPanic(s)
			if cb.OnSuccess != nil {
				cb.OnSuccess(a)
			}
		},
		OnError: func(err error) {
			if !done.CompareAndSwap(false, true) {
				s.ReportFailure(err)
				return
			}
			if cb.OnError == nil {
				s.ReportFailure(err)
				return
			}
			defer reportListenerPanic(s)
			cb.OnError(err)
		},
	}
}

// reportListenerPanic recovers a panic thrown by a listener arm and
// reports it. Must be invoked directly via defer.
func reportListenerPanic(s Scheduler) {
	if r := recover(); r != nil {
		s.ReportFailure(recoverAsError(r))
	}
}

// sink is the run loop's internal continuation. Unlike the public
// Callback, its arms receive the current frame id so completions hop
// through the trampoline exactly like descents do — this is what keeps
// the unwind of a deep synchronous chain stack-safe.
type sink[A any] struct {
	onSuccess func(frameID, A)
	onError   func(frameID, error)
}

// success forwards a value downstream through the run loop.
func (out sink[A]) success(s Scheduler, active *MultiAssignment, fid frameID, a A) {
	step(s, active, fid, func(fid frameID) {
		out.onSuccess(fid, a)
	})
}

// failure forwards an error downstream through the run loop.
func (out sink[A]) failure(s Scheduler, active *MultiAssignment, fid frameID, err error) {
	step(s, active, fid, func(fid frameID) {
		out.onError(fid, err)
	})
}
