// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Monad operations for tasks.
//
// Minimal definition: Now (unit) and FlatMap are necessary and
// sufficient. Map and Then are derived operations kept as optimizations
// to avoid the intermediate task allocation.
//
// Type-changing combinators are free functions because Go methods
// cannot introduce type parameters.

// Map applies a pure function to the result of a task. The function
// runs under panic quarantine; a quarantined panic is delivered through
// the error arm. Source errors are forwarded unchanged.
func Map[A, B any](t Task[A], f func(A) B) Task[B] {
	return Task[B]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[B]) {
		step(s, active, fid, func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					b, err := protect(func() B { return f(a) })
					if err != nil {
						out.failure(s, active, fid, err)
						return
					}
					out.success(s, active, fid, b)
				},
				onError: func(fid frameID, err error) {
					out.failure(s, active, fid, err)
				},
			})
		})
	}}
}

// FlatMap sequences a task-producing continuation after t. The
// continuation runs under panic quarantine; the produced task is
// entered through the run loop. Source errors are forwarded unchanged.
func FlatMap[A, B any](t Task[A], f func(A) Task[B]) Task[B] {
	return Task[B]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[B]) {
		step(s, active, fid, func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					next, err := protect(func() Task[B] { return f(a) })
					if err != nil {
						out.failure(s, active, fid, err)
						return
					}
					step(s, active, fid, func(fid frameID) {
						next.unsafeRun(s, active, fid, out)
					})
				},
				onError: func(fid frameID, err error) {
					out.failure(s, active, fid, err)
				},
			})
		})
	}}
}

// Flatten collapses a task of tasks into a task.
func Flatten[A any](t Task[Task[A]]) Task[A] {
	return FlatMap(t, func(inner Task[A]) Task[A] { return inner })
}

// Then sequences two tasks, discarding the first result.
//
// Allocation note: Then avoids the closure capture of a continuation
// that would occur with FlatMap(t, func(_ A) { return n }).
func Then[A, B any](t Task[A], n Task[B]) Task[B] {
	return Task[B]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[B]) {
		step(s, active, fid, func(fid frameID) {
			t.unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, _ A) {
					step(s, active, fid, func(fid frameID) {
						n.unsafeRun(s, active, fid, out)
					})
				},
				onError: func(fid frameID, err error) {
					out.failure(s, active, fid, err)
				},
			})
		})
	}}
}

// Sequence runs tasks one after another, collecting their results in
// input order. An error aborts the remainder and is delivered as-is.
// The scheduler is captured at run time, not construction.
func Sequence[A any](tasks ...Task[A]) Task[[]A] {
	return Task[[]A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[[]A]) {
		acc := make([]A, 0, len(tasks))
		var loop func(fid frameID, i int)
		loop = func(fid frameID, i int) {
			if i == len(tasks) {
				out.onSuccess(fid, acc)
				return
			}
			tasks[i].unsafeRun(s, active, fid, sink[A]{
				onSuccess: func(fid frameID, a A) {
					acc = append(acc, a)
					step(s, active, fid, func(fid frameID) {
						loop(fid, i+1)
					})
				},
				onError: func(fid frameID, err error) {
					out.failure(s, active, fid, err)
				},
			})
		}
		step(s, active, fid, func(fid frameID) {
			loop(fid, 0)
		})
	}}
}
