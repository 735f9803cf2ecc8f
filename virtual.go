// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"container/heap"
	"sync"
	"time"
)

// VirtualScheduler is a deterministic Scheduler driven by a virtual
// clock. Runnables execute only inside [VirtualScheduler.Tick], in
// (due time, submission order), so concurrent protocols can be tested
// without real time or real parallelism.
//
// Reported failures are captured for inspection instead of logged.
type VirtualScheduler struct {
	mu       sync.Mutex
	clock    time.Duration
	seq      uint64
	timers   timerQueue
	failures []error
}

// NewVirtualScheduler returns a virtual scheduler at clock zero.
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{}
}

// Execute schedules r at the current virtual time. It runs on the next
// Tick, never synchronously.
func (s *VirtualScheduler) Execute(r func()) {
	s.schedule(0, r)
}

// ScheduleOnce schedules r at clock+d. The returned handle removes the
// entry if canceled before it fires.
func (s *VirtualScheduler) ScheduleOnce(d time.Duration, r func()) Cancelable {
	t := s.schedule(d, r)
	return NewCancelable(func() { s.remove(t) })
}

// ReportFailure captures the error for later inspection.
func (s *VirtualScheduler) ReportFailure(err error) {
	s.mu.Lock()
	s.failures = append(s.failures, err)
	s.mu.Unlock()
}

// AlwaysAsync reports false: cold chains run on the ticking goroutine.
func (s *VirtualScheduler) AlwaysAsync() bool { return false }

// Tick advances the clock by d, running every due entry in (due time,
// submission order). Entries scheduled during the tick run in the same
// call when they fall due at or before the target time. Tick(0) drains
// everything due at the current instant.
func (s *VirtualScheduler) Tick(d time.Duration) {
	s.mu.Lock()
	target := s.clock + d
	for {
		if len(s.timers) == 0 || s.timers[0].due > target {
			s.clock = target
			s.mu.Unlock()
			return
		}
		t := heap.Pop(&s.timers).(*vtimer)
		if t.due > s.clock {
			s.clock = t.due
		}
		s.mu.Unlock()
		t.run()
		s.mu.Lock()
	}
}

// Clock returns the current virtual time.
func (s *VirtualScheduler) Clock() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// HasPending reports whether any entry is waiting to run.
func (s *VirtualScheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers) > 0
}

// Failures returns a copy of the captured failure reports.
func (s *VirtualScheduler) Failures() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.failures))
	copy(out, s.failures)
	return out
}

func (s *VirtualScheduler) schedule(d time.Duration, r func()) *vtimer {
	s.mu.Lock()
	t := &vtimer{due: s.clock + d, seq: s.seq, run: r}
	s.seq++
	heap.Push(&s.timers, t)
	s.mu.Unlock()
	return t
}

func (s *VirtualScheduler) remove(t *vtimer) {
	s.mu.Lock()
	if t.index >= 0 {
		heap.Remove(&s.timers, t.index)
	}
	s.mu.Unlock()
}

// vtimer is one scheduled runnable. index is its heap position, -1 once
// popped or removed.
type vtimer struct {
	due   time.Duration
	seq   uint64
	run   func()
	index int
}

// timerQueue is a min-heap of timers ordered by (due, seq).
type timerQueue []*vtimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*vtimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
