// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"errors"
	"fmt"
	"time"
)

// ErrCanceled fails the promise side of a [CancelableFuture] whose
// cancel handle was invoked before the underlying work completed.
var ErrCanceled = errors.New("task: canceled")

// ErrDidNotFail is delivered by [Task.Failed] when the source completes
// with a value instead of an error.
var ErrDidNotFail = errors.New("task: source did not fail")

// TimeoutError is delivered by [Task.Timeout] when the source does not
// complete within the configured duration.
type TimeoutError struct {
	// After is the duration that elapsed before the timeout fired.
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task: timed out after %s", e.After)
}

// IllegalStateError signals a protocol violation, such as a join branch
// signaling twice. It indicates a bug in the caller, not a runtime fault.
type IllegalStateError string

func (e IllegalStateError) Error() string {
	return "task: illegal state: " + string(e)
}

// PanicError wraps a panic value recovered from user code when that
// value is not already an error.
type PanicError struct {
	// Value is the recovered panic value.
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task: panic: %v", e.Value)
}

// recoverAsError converts a recovered panic value into an error.
// Panic values that already are errors pass through unchanged.
//
// The Go runtime refuses to recover truly fatal conditions (stack
// exhaustion, out of memory), so everything that reaches a recover is
// quarantinable user-produced failure.
func recoverAsError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}

// protect runs f under panic quarantine, converting a panic into an
// error return. This is the stream-error boundary: only the user
// function is inside the quarantine, never the downstream callback.
func protect[A any](f func() A) (a A, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverAsError(r)
		}
	}()
	return f(), nil
}

// protectEval runs a two-valued thunk under panic quarantine.
func protectEval[A any](f func() (A, error)) (a A, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverAsError(r)
		}
	}()
	return f()
}
