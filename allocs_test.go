// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pt_test

import (
	"testing"

	"code.hybscloud.com/pt"
)

func TestInvokeAllocations(t *testing.T) {
	prog := pt.NewProgram[*counterEnv](
		pt.Exec(func(e *counterEnv) { e.counter++ }),
		pt.WaitUntil(func(e *counterEnv) bool { return e.open }),
	)
	var th pt.Thread
	th.Init()
	e := &counterEnv{}

	allocs := testing.AllocsPerRun(100, func() {
		_ = prog.Invoke(&th, e)
	})
	if allocs > 0 {
		t.Errorf("Invoke allocs = %v; want 0", allocs)
	}

	// Full lifecycle: init, run to exit, every iteration.
	open := &counterEnv{open: true}
	allocs2 := testing.AllocsPerRun(100, func() {
		th.Init()
		_ = prog.Invoke(&th, open)
	})
	if allocs2 > 0 {
		t.Errorf("Init+Invoke allocs = %v; want 0", allocs2)
	}
}

func TestSpawnInvokeAllocations(t *testing.T) {
	childProg := pt.NewProgram[*family](
		pt.WaitUntil(func(f *family) bool { return f.x }),
	)
	parentProg := pt.NewProgram[*family](
		pt.Spawn(
			func(f *family) *pt.Thread { return &f.child },
			func(f *family) pt.Status { return childProg.Invoke(&f.child, f) },
		),
	)
	var th pt.Thread
	f := &family{}

	allocs := testing.AllocsPerRun(100, func() {
		th.Init()
		_ = parentProg.Invoke(&th, f)
	})
	if allocs > 0 {
		t.Errorf("parent Invoke allocs = %v; want 0", allocs)
	}
}
