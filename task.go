// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// taskKind tags the Task variants. The Now and Raise specializations
// bypass the trampoline entirely at the RunAsync boundary.
type taskKind uint8

const (
	taskNow taskKind = iota
	taskRaise
	taskRun
)

// Task describes a lazy asynchronous computation yielding a value of
// type A or an error. A task has no identity and holds no resources;
// it is an immutable description that executes only when started with
// [Task.RunAsync], and re-executes its effect on every start.
//
// The zero Task is equivalent to Now of A's zero value.
type Task[A any] struct {
	kind  taskKind
	value A
	err   error
	run   func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A])
}

// unsafeRun advances the task inside an existing activation. Callers
// must enter through step so that cancelation and the batch threshold
// are honored between frames.
func (t Task[A]) unsafeRun(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
	switch t.kind {
	case taskNow:
		out.onSuccess(fid, t.value)
	case taskRaise:
		out.onError(fid, t.err)
	default:
		t.run(s, active, fid, out)
	}
}

// Now lifts an already-computed value into a task.
func Now[A any](v A) Task[A] {
	return Task[A]{kind: taskNow, value: v}
}

// Raise lifts an error into a task.
func Raise[A any](err error) Task[A] {
	return Task[A]{kind: taskRaise, err: err}
}

// Eval defers a strict computation. The thunk runs on every start; a
// returned error or a quarantined panic is delivered through the error
// arm.
func Eval[A any](f func() (A, error)) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		v, err := protectEval(f)
		if err != nil {
			out.onError(fid, err)
			return
		}
		out.onSuccess(fid, v)
	}}
}

// Defer defers the production of a task. The producer runs on every
// start; the produced task is entered through the run loop.
func Defer[A any](f func() Task[A]) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		next, err := protect(f)
		if err != nil {
			out.onError(fid, err)
			return
		}
		step(s, active, fid, func(fid frameID) {
			next.unsafeRun(s, active, fid, out)
		})
	}}
}

// Fork forces an asynchronous boundary before running the source: the
// source starts on a fresh scheduler runnable rather than the calling
// goroutine.
func (t Task[A]) Fork() Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		startAsync(s, active, func(fid frameID) {
			t.unsafeRun(s, active, fid, out)
		})
	}}
}

// Create bridges a callback-style API into a task. On start, register
// receives the scheduler and a completion callback; the handle it
// returns is bound to the activation so canceling the run aborts the
// registered work. A panic inside register is delivered through the
// error arm. A nil returned handle is treated as [NopCancelable].
//
// Signals arriving after the activation is canceled are dropped.
func Create[A any](register func(s Scheduler, cb Callback[A]) Cancelable) Task[A] {
	return Task[A]{kind: taskRun, run: func(s Scheduler, active *MultiAssignment, fid frameID, out sink[A]) {
		cb := Callback[A]{
			OnSuccess: func(a A) {
				if active.IsCanceled() {
					return
				}
				out.onSuccess(0, a)
			},
			OnError: func(err error) {
				if active.IsCanceled() {
					return
				}
				out.onError(0, err)
			},
		}
		c, err := protect(func() Cancelable { return register(s, cb) })
		if err != nil {
			out.onError(fid, err)
			return
		}
		if c == nil {
			c = NopCancelable
		}
		active.Assign(c)
	}}
}
