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

// --- VirtualScheduler ---

func TestVirtualSchedulerRunsInDueOrder(t *testing.T) {
	s := task.NewVirtualScheduler()
	order := ""
	s.ScheduleOnce(30*time.Millisecond, func() { order += "c" })
	s.ScheduleOnce(10*time.Millisecond, func() { order += "a" })
	s.ScheduleOnce(20*time.Millisecond, func() { order += "b" })
	s.Tick(time.Second)
	if order != "abc" {
		t.Fatalf("got %q, want abc", order)
	}
}

func TestVirtualSchedulerSubmissionOrderBreaksTies(t *testing.T) {
	s := task.NewVirtualScheduler()
	order := ""
	s.Execute(func() { order += "a" })
	s.Execute(func() { order += "b" })
	s.Execute(func() { order += "c" })
	s.Tick(0)
	if order != "abc" {
		t.Fatalf("got %q, want abc", order)
	}
}

func TestVirtualSchedulerTickStopsAtTarget(t *testing.T) {
	s := task.NewVirtualScheduler()
	ran := false
	s.ScheduleOnce(50*time.Millisecond, func() { ran = true })
	s.Tick(49 * time.Millisecond)
	if ran {
		t.Fatal("timer fired early")
	}
	if got := s.Clock(); got != 49*time.Millisecond {
		t.Fatalf("clock at %s, want 49ms", got)
	}
	s.Tick(1 * time.Millisecond)
	if !ran {
		t.Fatal("timer did not fire at its due time")
	}
}

func TestVirtualSchedulerNestedScheduling(t *testing.T) {
	s := task.NewVirtualScheduler()
	order := ""
	s.Execute(func() {
		order += "a"
		s.Execute(func() { order += "b" })
	})
	s.Tick(0)
	if order != "ab" {
		t.Fatalf("entries scheduled during a tick did not run: %q", order)
	}
}

func TestVirtualSchedulerCancelRemovesEntry(t *testing.T) {
	s := task.NewVirtualScheduler()
	ran := false
	h := s.ScheduleOnce(10*time.Millisecond, func() { ran = true })
	h.Cancel()
	if s.HasPending() {
		t.Fatal("canceled entry still pending")
	}
	s.Tick(time.Second)
	if ran {
		t.Fatal("canceled entry ran")
	}
}

func TestVirtualSchedulerCapturesFailures(t *testing.T) {
	errA := errors.New("a")
	s := task.NewVirtualScheduler()
	s.ReportFailure(errA)
	fs := s.Failures()
	if len(fs) != 1 || fs[0] != errA {
		t.Fatalf("got %v, want [a]", fs)
	}
}
