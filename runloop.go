// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Frame-counted trampoline. Synchronous chains progress on the current
// goroutine until the batch threshold, then re-submit to the scheduler
// with a fresh frame id. Cancelation is observed between frames.

// frameID counts synchronous continuation hops since the last
// asynchronous boundary.
type frameID uint32

// batchSize is the number of synchronous hops permitted before the run
// loop forces an asynchronous boundary.
const batchSize frameID = 128

// step advances the run loop by one frame. A canceled activation is
// dropped; below the batch threshold k runs on the current goroutine
// with an incremented id; at the threshold k is re-submitted to the
// scheduler with a fresh id.
func step(s Scheduler, active *MultiAssignment, fid frameID, k func(frameID)) {
	if active.IsCanceled() {
		return
	}
	if fid < batchSize {
		k(fid + 1)
		return
	}
	s.Execute(func() {
		if active.IsCanceled() {
			return
		}
		k(0)
	})
}

// start enters the run loop under the scheduler's default policy:
// synchronous on the calling goroutine unless the scheduler demands an
// asynchronous first frame.
func start(s Scheduler, active *MultiAssignment, k func(frameID)) {
	if s.AlwaysAsync() {
		startAsync(s, active, k)
		return
	}
	k(0)
}

// startAsync enters the run loop on a fresh scheduler runnable,
// regardless of the batch threshold.
func startAsync(s Scheduler, active *MultiAssignment, k func(frameID)) {
	s.Execute(func() {
		if active.IsCanceled() {
			return
		}
		k(0)
	})
}
