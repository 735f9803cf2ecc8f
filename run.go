// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// RunAsync starts the task. It allocates a fresh activation handle and
// wraps cb in a single-shot safe callback, then enters the run loop
// under the scheduler's default policy. The returned handle cancels the
// in-flight work; after a terminal outcome it is inert.
//
// Now and Raise short-circuit: the outcome is delivered on the calling
// goroutine without touching the scheduler.
func (t Task[A]) RunAsync(s Scheduler, cb Callback[A]) Cancelable {
	safe := safeCallback(s, cb)
	switch t.kind {
	case taskNow:
		safe.OnSuccess(t.value)
		return NopCancelable
	case taskRaise:
		safe.OnError(t.err)
		return NopCancelable
	}
	active := NewMultiAssignment()
	out := sink[A]{
		onSuccess: func(_ frameID, a A) { safe.OnSuccess(a) },
		onError:   func(_ frameID, err error) { safe.OnError(err) },
	}
	start(s, active, func(fid frameID) {
		t.run(s, active, fid, out)
	})
	return active
}

// RunAsyncFunc starts the task, delivering the outcome to a two-valued
// completion function: (value, nil) on success, (zero, err) on error.
func (t Task[A]) RunAsyncFunc(s Scheduler, f func(A, error)) Cancelable {
	return t.RunAsync(s, Callback[A]{
		OnSuccess: func(a A) { f(a, nil) },
		OnError: func(err error) {
			var zero A
			f(zero, err)
		},
	})
}

// RunAsyncFuture starts the task and returns a [CancelableFuture]
// observing its outcome. Canceling the future both cancels the
// underlying work and fails the promise with [ErrCanceled].
//
// Now and Raise short-circuit to an already-completed future without
// touching the scheduler.
func (t Task[A]) RunAsyncFuture(s Scheduler) *CancelableFuture[A] {
	f := newCancelableFuture[A]()
	switch t.kind {
	case taskNow:
		f.trySuccess(t.value)
		f.work = NopCancelable
		return f
	case taskRaise:
		f.tryFailure(t.err)
		f.work = NopCancelable
		return f
	}
	f.work = t.RunAsync(s, Callback[A]{
		OnSuccess: func(a A) { f.trySuccess(a) },
		OnError:   func(err error) { f.tryFailure(err) },
	})
	return f
}
