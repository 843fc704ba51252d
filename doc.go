// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pt provides protothreads: extremely lightweight, stackless threads
// of control multiplexed onto a single call stack.
//
// A protothread blocks on a condition and resumes exactly where it left off
// on its next invocation, without preserving a stack frame in between. The
// only thing that survives suspension is a local continuation — an integer
// resume marker held in a caller-owned control block. Everything else the
// body needs across suspensions lives in storage the owner supplies.
//
// # Design Philosophy
//
// pt provides:
//   - A minimal core: one resume marker per thread, two statuses
//   - Caller-owned allocation — the mechanism allocates nothing per thread
//     and nothing per invocation
//   - No built-in scheduler: the owner composes its own round-robin or
//     event-driven loop from [StillRunning]
//
// Concurrency is simulated, single-threaded and cooperative: the owner
// invokes protothread functions in turn, and at no instant are two bodies
// executing. Suspension happens only at blocking sites; control always
// returns fully to the caller.
//
// # Control Blocks and Status
//
// [Thread] is the control block. It holds exactly one [LC] and is owned by
// whatever code instantiates the protothread; Init must run before first use
// and before any reuse. An invocation returns one of two statuses:
//
//   - [Waiting]: suspended, invoke again later
//   - [Exited]: terminated, do not invoke again without Init
//
// Waiting is the zero value by contract; wait-for-child composites treat the
// child's status as their wait condition.
//
// # Local Continuations
//
// [LC] records "where to resume" inside a single body: a sentinel meaning
// start from the top, a marker naming one blocking site, or a terminal value
// after exit. Markers are produced only immediately before a condition test
// and consumed only by the dispatch at body entry. At most one marker is
// live per control block.
//
// # The Step DSL
//
// Go has no computed goto, so a body is expressed as an explicit state
// machine the way a defunctionalized continuation is: a sequence of steps
// compiled by [NewProgram] into a flat instruction list, with the resume
// marker as program counter and every blocking site identified by its
// instruction index.
//
//	type counter struct{ n int }
//
//	prog := pt.NewProgram[*counter](
//		pt.WaitUntil(func(c *counter) bool { return c.n >= 3 }),
//		pt.Exec(func(c *counter) { fmt.Println("three") }),
//	)
//
//	var t pt.Thread
//	t.Init()
//	c := &counter{}
//	for pt.StillRunning(prog.Invoke(&t, c)) {
//		c.n++
//	}
//
// Straight-line segments ([Exec]) run once per pass and are skipped when an
// invocation resumes at a later site — resuming never re-runs side effects
// between the previous resume point and the suspending site. Blocking comes
// from [WaitUntil], [WaitWhile], [WaitThread], [Yield], [YieldUntil] and
// [SemWait]; [Control] redirects with [Restart] or [Exit]; [Loop] and
// [While] compile to jumps, which are not blocking sites.
//
// # Child Protothreads
//
// A parent drives a child by invoking the child's function and treating its
// status as a wait condition. [Spawn] initializes the child's control block
// and waits until the child exits; the parent proceeds in the same
// invocation in which the child first returns Exited — no extra suspend is
// introduced by the wait-for-child construct. The child's block may live in
// the owner storage or anywhere that outlives every pending invocation.
//
// # Yielding
//
// [Yield] suspends unconditionally and passes on the next invocation,
// exactly once: a loop that re-arrives at the same yield within one
// invocation suspends again, which is what makes one-tick-per-invocation
// loops work. [YieldUntil] additionally re-tests its condition on resume.
//
// # Raw Bodies
//
// The step DSL is one rendition of the contract, not the contract itself.
// A raw body implements [ThreadFunc] directly, dispatching on [LC.Resume]
// with each blocking site at the top of its own switch case:
//
//	func conn(t *pt.Thread, c *state) pt.Status {
//		switch site, _ := t.LC.Resume(); site {
//		case 0:
//			c.dial()
//			fallthrough
//		case 1:
//			if !t.WaitUntil(1, c.ready) {
//				return pt.Waiting
//			}
//			c.send()
//		}
//		return t.End()
//	}
//
// Raw sites are numbered from 1 (0 is the top-of-body dispatch) and must be
// unique per static blocking site; two sites sharing a number is undefined
// behavior. [Thread.WaitUntil], [Thread.WaitWhile], [Thread.WaitThread],
// [Thread.Restart], [Thread.Exit] and [Thread.End] cover the raw contract.
//
// # Semaphores
//
// [Semaphore] is the classic counting-semaphore companion: a counter in
// owner storage with [SemWait]/[SemSignal] steps, or [Semaphore.Available]
// and [Semaphore.Take] under a raw wait. Bounded-buffer producer/consumer
// pairs fall out directly.
//
// # Scheduling
//
// The owner's loop is the scheduler. The canonical idiom:
//
//	t.Init()
//	for pt.StillRunning(run(&t, in)) {
//		in = nextInput()
//	}
//
// Across protothreads, relative order is whatever order the owner chooses;
// the core imposes none. An owner cancels a protothread by ceasing to invoke
// it and discarding the control block — there is no destructor hook, so any
// resources the thread held are the owner's to reclaim.
//
// # Caller Obligations
//
// There is no error channel; the failure modes are contract violations the
// mechanism does not detect:
//
//   - Local variables do not survive suspension. Cross-suspension state
//     belongs in the owner storage E.
//   - Conditions are re-evaluated from scratch on every resume and must
//     read only state that outlives suspension.
//   - Re-invoking after Exited without Init executes nothing under a
//     Program; raw bodies that skip the [LC.Exited] guard inherit pt.h's
//     silent restart instead.
//   - One control block, one driver: never invoke the same block from two
//     places within one invocation.
//   - State shared between protothreads must be written only when no reader
//     is mid-invocation — enforced by the owner's invocation discipline.
package pt
