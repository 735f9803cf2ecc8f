// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Error recovery combinators.
//
// Report-vs-propagate rule: when the deciding function itself panics,
// the original error is handed to the scheduler's failure reporter and
// the new error is delivered downstream. The original must not vanish,
// but only one outcome may flow.

// Failed transposes outcomes: a source error becomes the success value,
// and a source value becomes [ErrDidNotFail].
func (t Task[A]) Failed() Task[error] {
	return Task[error]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[error]) {
		step(s, active, fid, func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, _ A) {
					out.failure(s, active, fid, ErrDidNotFail)
				},
				onError: func(fid frameID, err error) {
					out.success(s, active, fid, err)
				},
			})
		})
	}}
}

// OnErrorRecover recovers a source error with a partial function: pf
// returns the replacement value and whether it is defined at the error.
// Undefined errors pass through unchanged.
func (t Task[A]) OnErrorRecover(pf func(error) (A, bool)) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		step(s, active, fid, func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					out.success(s, active, fid, a)
				},
				onError: func(fid frameID, err error) {
					v, ok, perr := protectPartial(pf, err)
					if perr != nil {
						s.ReportFailure(err)
						out.failure(s, active, fid, perr)
						return
					}
					if !ok {
						out.failure(s, active, fid, err)
						return
					}
					out.success(s, active, fid, v)
				},
			})
		})
	}}
}

// OnErrorRecoverWith recovers a source error with a partial function
// producing a task. The produced task is entered through the run loop.
func (t Task[A]) OnErrorRecoverWith(pf func(error) (Task[A], bool)) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		step(s, active, fid, func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					out.success(s, active, fid, a)
				},
				onError: func(fid frameID, err error) {
					next, ok, perr := protectPartial(pf, err)
					if perr != nil {
						s.ReportFailure(err)
						out.failure(s, active, fid, perr)
						return
					}
					if !ok {
						out.failure(s, active, fid, err)
						return
					}
					step(s, active, fid, func(fid frameID) {
						next.unsafeRun(s, active, fid, out)
					})
				},
			})
		})
	}}
}

// OnErrorFallbackTo switches to the backup task when the source fails.
// Tasks are lazy descriptions, so the backup costs nothing until the
// source actually fails.
func (t Task[A]) OnErrorFallbackTo(backup Task[A]) Task[A] {
	return t.OnErrorRecoverWith(func(error) (Task[A], bool) {
		return backup, true
	})
}

// OnErrorRetry re-runs the source up to n more times on error, for at
// most n+1 executions in total. Success at any attempt short-circuits;
// the last error is delivered if every attempt fails. Each retry
// re-enters the source through the run loop.
func (t Task[A]) OnErrorRetry(n int) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		var attempt func(fid frameID, left int)
		attempt = func(fid frameID, left int) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					out.success(s, active, fid, a)
				},
				onError: func(fid frameID, err error) {
					if left <= 0 {
						out.failure(s, active, fid, err)
						return
					}
					step(s, active, fid, func(fid frameID) {
						attempt(fid, left-1)
					})
				},
			})
		}
		step(s, active, fid, func(fid frameID) {
			attempt(fid, n)
		})
	}}
}

// OnErrorRetryIf re-runs the source while pred holds for the error. A
// panic inside pred reports the original error and delivers the
// predicate's error.
func (t Task[A]) OnErrorRetryIf(pred func(error) bool) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		var attempt func(fid frameID)
		attempt = func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					out.success(s, active, fid, a)
				},
				onError: func(fid frameID, err error) {
					retry, perr := protect(func() bool { return pred(err) })
					if perr != nil {
						s.ReportFailure(err)
						out.failure(s, active, fid, perr)
						return
					}
					if !retry {
						out.failure(s, active, fid, err)
						return
					}
					step(s, active, fid, attempt)
				},
			})
		}
		step(s, active, fid, attempt)
	}}
}

// protectPartial applies a partial function to err under panic
// quarantine.
func protectPartial[A any](pf func(error) (A, bool), err error) (a A, ok bool, perr error) {
	defer func() {
		if r := recover(); r != nil {
			perr = recoverAsError(r)
		}
	}()
	a, ok = pf(err)
	return
}
