// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task provides lazy, cancelable asynchronous effects in Go.
//
// The core type [Task] is a description of a computation producing either
// a value or an error. A task does not execute until explicitly started
// with [Task.RunAsync]; running the same task twice re-executes its
// effect. Tasks compose as a functor ([Map]), a monad ([FlatMap]), and a
// parallel applicative ([Map2]).
//
// # Design Philosophy
//
// task provides:
//   - A minimal but complete surface for describing, composing, racing,
//     timing out, and canceling asynchronous work
//   - A frame-counted trampoline that keeps stack depth bounded while
//     letting cold synchronous chains progress on the caller's goroutine
//   - Cooperative cancelation observed between frames, never preempting
//     in-flight user code
//
// # Run Loop
//
// Execution is driven by a frame-counted trampoline. Each continuation
// hop carries a frame id; below the batch threshold the continuation is
// invoked on the current goroutine, at the threshold it is re-submitted
// to the [Scheduler] with a fresh id. Cancelation is checked before
// every hop, so a canceled activation stops at the next frame boundary.
//
// # Core Operations
//
// Factories:
//
//   - [Now]: Lift an already-computed value
//   - [Raise]: Lift an error
//   - [Eval]: Defer a strict computation — re-executed on every run
//   - [Defer]: Defer the production of a task
//   - [Create]: Bridge a callback-style API into a task
//   - [Task.Fork]: Force an asynchronous boundary before the source
//
// Composition:
//
//   - [Map]: Apply a pure function to the result
//   - [FlatMap]: Sequence a task-producing continuation
//   - [Flatten]: Collapse a task of tasks
//   - [Then]: Sequence, discarding the first result
//   - [Map2], [Zip]: Join two tasks running in parallel
//   - [Sequence]: Run tasks one after another, collecting results
//
// Error handling:
//
//   - [Task.Failed]: Transpose outcomes — errors become values
//   - [Task.OnErrorRecover], [Task.OnErrorRecoverWith]: Partial recovery
//   - [Task.OnErrorFallbackTo]: Switch to a backup task on error
//   - [Task.OnErrorRetry], [Task.OnErrorRetryIf]: Re-run the source
//
// Timing and racing:
//
//   - [Task.DelayExecution], [Task.DelayResult]: Shift work or delivery
//   - [Task.Timeout], [Task.TimeoutTo]: Bound completion time
//   - [Task.AmbWith], [Amb]: First completion wins, losers are canceled
//
// # Cancelation
//
// Starting a task returns a [Cancelable] handle. Handles form a small
// hierarchy: [NopCancelable], [NewCancelable] (an at-most-once action),
// [MultiAssignment] (a rebindable slot), and [Composite] (a fan-out
// set). Cancelation is monotonic: once canceled a handle never reports
// otherwise, re-canceling is a no-op, and no callback arm fires after
// the activation observes the cancel.
//
// # Callback Discipline
//
// A [Callback] has two arms, success and error, of which exactly one is
// invoked at most once per run. The run loop enforces this at the
// [Task.RunAsync] boundary with a single-shot gate; errors with no
// surviving listener — a listener panic, or an error signaled after an
// outcome was already delivered — go to the scheduler's failure
// reporter instead of being re-raised.
//
// # Schedulers
//
// The core consumes the [Scheduler] contract: submit runnables, schedule
// delayed runnables, report failures, and expose an always-async flag.
// [NewScheduler] returns the goroutine-backed production scheduler.
// [VirtualScheduler] is a deterministic virtual-clock implementation for
// tests and simulation; time advances only through [VirtualScheduler.Tick].
//
// # Example
//
//	s := task.NewScheduler(nil)
//	t := task.FlatMap(
//		task.Eval(func() (int, error) { return 7, nil }),
//		func(x int) task.Task[int] { return task.Now(x * 6) },
//	)
//	f := t.RunAsyncFuture(s)
//	v, err := f.Result()
//	// v == 42, err == nil
package task
