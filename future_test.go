// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/task"
)

// --- RunAsyncFuture ---

func TestFutureCompletedFastPath(t *testing.T) {
	s := task.NewVirtualScheduler()
	f := task.Now(42).RunAsyncFuture(s)
	v, err, ok := f.TryResult()
	if !ok || err != nil || v != 42 {
		t.Fatalf("got %d,%v,%v, want 42,nil,true", v, err, ok)
	}
	if s.HasPending() {
		t.Fatal("completed fast path touched the scheduler")
	}
}

func TestFutureRaiseFastPath(t *testing.T) {
	errA := errors.New("a")
	s := task.NewVirtualScheduler()
	f := task.Raise[int](errA).RunAsyncFuture(s)
	_, err, ok := f.TryResult()
	if !ok || err != errA {
		t.Fatalf("got %v,%v, want a,true", err, ok)
	}
}

func TestFutureCompletesOnTick(t *testing.T) {
	s := task.NewVirtualScheduler()
	f := task.Now(7).DelayExecution(10 * time.Millisecond).RunAsyncFuture(s)
	if _, _, ok := f.TryResult(); ok {
		t.Fatal("future completed before the delay elapsed")
	}
	s.Tick(10 * time.Millisecond)
	select {
	case <-f.Done():
	default:
		t.Fatal("done channel not closed after completion")
	}
	v, err := f.Result()
	if err != nil || v != 7 {
		t.Fatalf("got %d,%v, want 7,nil", v, err)
	}
}

func TestFutureCancelFailsPromise(t *testing.T) {
	s := task.NewVirtualScheduler()
	f := task.Now(7).DelayExecution(time.Hour).RunAsyncFuture(s)
	f.Cancel()
	v, err := f.Result()
	if err != task.ErrCanceled || v != 0 {
		t.Fatalf("got %d,%v, want 0,ErrCanceled", v, err)
	}
	if s.HasPending() {
		t.Fatal("cancel left the delay timer pending")
	}
}

func TestFutureCancelAfterCompletionIsNoop(t *testing.T) {
	s := task.NewVirtualScheduler()
	f := task.Now(7).RunAsyncFuture(s)
	f.Cancel()
	v, err := f.Result()
	if err != nil || v != 7 {
		t.Fatalf("got %d,%v, want 7,nil", v, err)
	}
}

func TestFutureCancelIdempotent(t *testing.T) {
	s := task.NewVirtualScheduler()
	f := task.Now(7).DelayExecution(time.Hour).RunAsyncFuture(s)
	f.Cancel()
	f.Cancel()
	if _, err := f.Result(); err != task.ErrCanceled {
		t.Fatalf("got %v, want ErrCanceled", err)
	}
}

func TestFutureBlockingResult(t *testing.T) {
	s := task.NewScheduler(func(error) { return })
	f := task.Now(1).DelayExecution(time.Millisecond).RunAsyncFuture(s)
	v, err := f.Result()
	if err != nil || v != 1 {
		t.Fatalf("got %d,%v, want 1,nil", v, err)
	}
}
