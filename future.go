// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync/atomic"

// CancelableFuture pairs a read-only view of a running task's eventual
// outcome with the handle to abort it. The done channel is the promise:
// it is closed exactly once, after the outcome fields are written.
type CancelableFuture[A any] struct {
	completed atomic.Bool
	value     A
	err       error
	done      chan struct{}
	work      Cancelable
}

func newCancelableFuture[A any]() *CancelableFuture[A] {
	return &CancelableFuture[A]{done: make(chan struct{})}
}

// trySuccess completes the promise with a value. Reports whether this
// call won the completion race.
func (f *CancelableFuture[A]) trySuccess(a A) bool {
	if !f.completed.CompareAndSwap(false, true) {
		return false
	}
	f.value = a
	close(f.done)
	return true
}

// tryFailure completes the promise with an error. Reports whether this
// call won the completion race.
func (f *CancelableFuture[A]) tryFailure(err error) bool {
	if !f.completed.CompareAndSwap(false, true) {
		return false
	}
	f.err = err
	close(f.done)
	return true
}

// Done returns a channel closed when the outcome is available.
func (f *CancelableFuture[A]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the outcome is available and returns it.
func (f *CancelableFuture[A]) Result() (A, error) {
	<-f.done
	return f.value, f.err
}

// TryResult returns the outcome without blocking. The bool reports
// whether the future has completed.
func (f *CancelableFuture[A]) TryResult() (A, error, bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero A
		return zero, nil, false
	}
}

// Cancel aborts the underlying work and fails the promise with
// [ErrCanceled]. Canceling a completed future is a no-op.
func (f *CancelableFuture[A]) Cancel() {
	f.work.Cancel()
	f.tryFailure(ErrCanceled)
}
