// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"sync/atomic"
	"time"
)

// Timeout bounds the source's completion time. If the source does not
// complete within d, it is canceled and a [*TimeoutError] is delivered.
// Exactly one of the source outcome and the timeout outcome flows.
func (t Task[A]) Timeout(d time.Duration) Task[A] {
	return t.timeoutWith(d, Task[A]{}, false)
}

// TimeoutTo is like [Task.Timeout] but switches to the backup task on
// expiry instead of delivering an error.
func (t Task[A]) TimeoutTo(d time.Duration, backup Task[A]) Task[A] {
	return t.timeoutWith(d, backup, true)
}

// timeoutWith arbitrates between the source and a scheduled expiry via
// an atomic gate. The winner cancels the loser's handle. When the source
// wins, or the expiry switches to the backup, the activation is rebound
// to reference only the winning side; a plain timeout leaves it as is.
func (t Task[A]) timeoutWith(d time.Duration, backup Task[A], hasBackup bool) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		gate := new(atomic.Bool)
		main := NewMultiAssignment()
		timer := s.ScheduleOnce(d, func() {
			if active.IsCanceled() || !gate.CompareAndSwap(false, true) {
				return
			}
			main.Cancel()
			if !hasBackup {
				out.onError(0, &TimeoutError{After: d})
				return
			}
			next := NewMultiAssignment()
			active.Assign(next)
			backup.unsafeRun(s, next, 0, out)
		})
		active.Assign(NewComposite(main, timer))
		step(s, main, fid, func(fid frameID) {
			t.unsafeRun(s, main, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					if !gate.CompareAndSwap(false, true) {
						return
					}
					timer.Cancel()
					active.Assign(main)
					out.success(s, main, fid, a)
				},
				onError: func(fid frameID, err error) {
					if !gate.CompareAndSwap(false, true) {
						s.ReportFailure(err)
						return
					}
					timer.Cancel()
					active.Assign(main)
					out.failure(s, main, fid, err)
				},
			})
		})
	}}
}
