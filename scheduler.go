// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"log"
	"time"
)

// Scheduler is the execution substrate the run loop is written against:
// submit runnables, schedule delayed runnables, report failures that
// have no surviving listener, and expose whether the first frame of a
// run must be asynchronous.
type Scheduler interface {
	// Execute submits a runnable for asynchronous execution.
	Execute(r func())

	// ScheduleOnce runs r after d. The returned handle aborts the
	// runnable if canceled before it fires.
	ScheduleOnce(d time.Duration, r func()) Cancelable

	// ReportFailure consumes an error that has nowhere else to go.
	ReportFailure(err error)

	// AlwaysAsync reports whether entering the run loop must always
	// submit to the scheduler instead of running the first frames on
	// the calling goroutine.
	AlwaysAsync() bool
}

// Reporter consumes errors that have no surviving listener.
type Reporter func(err error)

// NewScheduler returns the goroutine-backed production scheduler:
// one goroutine per runnable, time.AfterFunc timers, and panics inside
// runnables recovered and reported. A nil reporter logs through the
// standard logger.
func NewScheduler(report Reporter) Scheduler {
	if report == nil {
		report = func(err error) {
			log.Printf("task: uncaught failure: %v", err)
		}
	}
	return &goScheduler{report: report}
}

type goScheduler struct {
	report Reporter
}

func (s *goScheduler) Execute(r func()) {
	go s.guarded(r)
}

func (s *goScheduler) ScheduleOnce(d time.Duration, r func()) Cancelable {
	t := time.AfterFunc(d, func() { s.guarded(r) })
	return NewCancelable(func() { t.Stop() })
}

func (s *goScheduler) ReportFailure(err error) {
	s.report(err)
}

func (s *goScheduler) AlwaysAsync() bool { return false }

// guarded runs r, reporting instead of crashing the goroutine when r
// panics with a recoverable value.
func (s *goScheduler) guarded(r func()) {
	defer func() {
		if v := recover(); v != nil {
			s.report(recoverAsError(v))
		}
	}()
	r()
}
