// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "time"

// DelayExecution postpones the start of the source by d. The delay
// handle is bound to the activation, so canceling during the wait
// aborts execution before the source starts.
func (t Task[A]) DelayExecution(d time.Duration) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		timer := s.ScheduleOnce(d, func() {
			if active.IsCanceled() {
				return
			}
			t.unsafeRun(s, active, 0, out)
		})
		active.Assign(timer)
	}}
}

// DelayResult runs the source immediately but postpones a successful
// delivery by d. Errors are never delayed.
func (t Task[A]) DelayResult(d time.Duration) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		step(s, active, fid, func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					timer := s.ScheduleOnce(d, func() {
						if active.IsCanceled() {
							return
						}
						out.onSuccess(0, a)
					})
					active.Assign(timer)
				},
				onError: func(fid frameID, err error) {
					out.failure(s, active, fid, err)
				},
			})
		})
	}}
}
