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

// --- DelayExecution ---

func TestDelayExecutionWaits(t *testing.T) {
	s := task.NewVirtualScheduler()
	ran := false
	tt := task.Eval(func() (int, error) { ran = true; return 1, nil }).DelayExecution(30 * time.Millisecond)
	var r result[int]
	tt.RunAsync(s, r.callback())
	s.Tick(29 * time.Millisecond)
	if ran {
		t.Fatal("source ran before the delay elapsed")
	}
	s.Tick(1 * time.Millisecond)
	if !ran || r.value != 1 {
		t.Fatalf("got ran=%v value=%d, want true 1", ran, r.value)
	}
}

func TestDelayExecutionCancelDuringWait(t *testing.T) {
	s := task.NewVirtualScheduler()
	ran := false
	tt := task.Eval(func() (int, error) { ran = true; return 1, nil }).DelayExecution(30 * time.Millisecond)
	var r result[int]
	handle := tt.RunAsync(s, r.callback())
	s.Tick(10 * time.Millisecond)
	handle.Cancel()
	s.Tick(100 * time.Millisecond)
	if ran {
		t.Fatal("source ran after cancelation")
	}
	if r.calls() != 0 {
		t.Fatal("canceled run delivered")
	}
	if s.HasPending() {
		t.Fatal("canceled delay left a pending timer")
	}
}

// --- DelayResult ---

func TestDelayResultDelaysSuccess(t *testing.T) {
	s := task.NewVirtualScheduler()
	ran := false
	tt := task.Eval(func() (int, error) { ran = true; return 7, nil }).DelayResult(20 * time.Millisecond)
	var r result[int]
	tt.RunAsync(s, r.callback())
	if !ran {
		t.Fatal("source did not run immediately")
	}
	if r.calls() != 0 {
		t.Fatal("delivered before the delay elapsed")
	}
	s.Tick(20 * time.Millisecond)
	if r.value != 7 || r.calls() != 1 {
		t.Fatalf("got %d (%d calls), want 7 once", r.value, r.calls())
	}
}

// Errors are never delayed.
func TestDelayResultErrorImmediate(t *testing.T) {
	errA := errors.New("a")
	s := task.NewVirtualScheduler()
	tt := task.Raise[int](errA).DelayResult(time.Hour)
	var r result[int]
	tt.RunAsync(s, r.callback())
	if r.err != errA {
		t.Fatalf("got %v, want a delivered at once", r.err)
	}
	if s.HasPending() {
		t.Fatal("error path scheduled a timer")
	}
}

func TestDelayResultCancelDuringWait(t *testing.T) {
	s := task.NewVirtualScheduler()
	tt := task.Now(7).DelayResult(20 * time.Millisecond)
	var r result[int]
	handle := tt.RunAsync(s, r.callback())
	handle.Cancel()
	s.Tick(time.Hour)
	if r.calls() != 0 {
		t.Fatal("canceled run delivered")
	}
}
