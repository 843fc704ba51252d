// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pt

// Counting semaphores for protothreads, the standard companion to the core
// primitives. A semaphore is plain owner storage: it must live where wait
// conditions can reach it across suspensions, never in a body's locals.
// Because protothreads are strictly sequential, no atomicity is involved —
// the semaphore is a counter with a waiting convention, not a lock.

// Semaphore is a counting semaphore. The zero value is a semaphore with
// count zero; Init sets any other starting count.
type Semaphore struct {
	count uint
}

// Init sets the semaphore's count. Like a control block, a semaphore is
// re-initialized by its owner, never by the mechanism.
func (s *Semaphore) Init(count uint) { s.count = count }

// Signal increments the count, releasing one waiter on a later invocation.
func (s *Semaphore) Signal() { s.count++ }

// Available reports whether Take would succeed. Raw bodies pair it with
// Thread.WaitUntil; the step DSL uses SemWait.
func (s *Semaphore) Available() bool { return s.count > 0 }

// Take consumes one unit. Call only after Available reports true.
func (s *Semaphore) Take() {
	if s.count > 0 {
		s.count--
	}
}

// SemWait blocks until the selected semaphore is available, then takes one
// unit. The take compiles to its own instruction after the wait, and only
// the wait records a marker, so a resumed invocation re-tests availability
// without repeating a completed take.
func SemWait[E any](sel func(E) *Semaphore) Step[E] {
	return seqStep[E]{
		WaitUntil(func(e E) bool { return sel(e).Available() }),
		Exec(func(e E) { sel(e).Take() }),
	}
}

// SemSignal signals the selected semaphore and falls through.
func SemSignal[E any](sel func(E) *Semaphore) Step[E] {
	return Exec(func(e E) { sel(e).Signal() })
}
