// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"code.hybscloud.com/task"
)

// result captures the outcome of a run and counts arm invocations.
type result[A any] struct {
	value     A
	err       error
	successes int
	errors    int
}

func (r *result[A]) callback() task.Callback[A] {
	return task.Callback[A]{
		OnSuccess: func(a A) { r.value = a; r.successes++ },
		OnError:   func(err error) { r.err = err; r.errors++ },
	}
}

func (r *result[A]) calls() int { return r.successes + r.errors }
