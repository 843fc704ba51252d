// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pt

// Status is the result of one protothread invocation.
//
// The encoding is part of the contract: Waiting is the zero value and Exited
// is nonzero. Wait-for-child composites treat the child's status as their
// wait condition, and external callers rely on Waiting == 0 when embedding
// statuses in their own dispatch tables.
type Status uint8

const (
	// Waiting means the invocation suspended at a blocking site.
	// The caller must invoke again later.
	Waiting Status = iota

	// Exited means the protothread terminated, by reaching the end of its
	// body or by an explicit exit. The caller must not invoke again without
	// re-initializing the control block.
	Exited
)

// String returns "waiting" or "exited".
func (s Status) String() string {
	if s == Waiting {
		return "waiting"
	}
	return "exited"
}

// StillRunning reports whether the protothread should be invoked again.
// The canonical driving loop:
//
//	var t pt.Thread
//	t.Init()
//	for pt.StillRunning(run(&t, in)) {
//		in = nextInput()
//	}
func StillRunning(s Status) bool { return s == Waiting }

// Thread is a protothread control block. It holds exactly one local
// continuation and nothing else; all other cross-invocation state lives in
// storage the owner supplies to the body.
//
// The code that instantiates the protothread owns the block exclusively. It
// must call Init before the first invocation and again before any reuse, and
// it must never drive the same block from two places within one invocation.
type Thread struct {
	// LC is the saved resume point. Exported so raw bodies can dispatch on
	// it directly; step-DSL users never touch it.
	LC LC
}

// Init prepares the control block for its first invocation, or returns a
// suspended or exited protothread to the top of its body.
func (t *Thread) Init() { t.LC.Init() }

// ThreadFunc is the protothread function shape: a state transition from
// (control block, input) to a status. The input E is owner storage; it is
// the only place state survives a suspend/resume cycle, because ordinary
// locals are gone once the invocation returns Waiting.
type ThreadFunc[E any] func(t *Thread, in E) Status

// Raw body helpers.
//
// A raw body dispatches on LC.Resume and writes each blocking site as the
// first statement of its own switch case, with the preceding case falling
// through:
//
//	func handshake(t *pt.Thread, h *conn) pt.Status {
//		switch site, _ := t.LC.Resume(); site {
//		case 0:
//			h.sendSyn()
//			fallthrough
//		case 1:
//			if !t.WaitUntil(1, h.established) {
//				return pt.Waiting
//			}
//			h.sendData()
//		}
//		return t.End()
//	}
//
// Site numbers start at 1 and must be unique per blocking site; that
// obligation is the raw contract's price for skipping the step DSL.

// WaitUntil records site as the resume point and reports whether cond lets
// the body fall through. When it returns false the body must return Waiting
// immediately; the next invocation re-tests the condition from scratch.
func (t *Thread) WaitUntil(site int, cond bool) bool {
	t.LC.Set(site)
	return cond
}

// WaitWhile is WaitUntil with the condition negated: the body blocks for as
// long as cond holds.
func (t *Thread) WaitWhile(site int, cond bool) bool {
	return t.WaitUntil(site, !cond)
}

// WaitThread records site as the resume point and reports whether the child
// invocation's status lets the parent fall through. The child's status is
// the wait condition: Waiting blocks the parent, Exited falls through in the
// same invocation.
func (t *Thread) WaitThread(site int, s Status) bool {
	return t.WaitUntil(site, s != Waiting)
}

// Restart returns the protothread to the top of its body and suspends. The
// next invocation re-executes every statement from the top, including any
// code before the first blocking site.
func (t *Thread) Restart() Status {
	t.LC.Init()
	return Waiting
}

// Exit terminates the protothread immediately, short-circuiting the rest of
// the body for this invocation. Any live marker is cleared so no stale
// resume point can be misread, and the continuation is parked terminal so
// further invocations through a Program execute nothing until Init.
func (t *Thread) Exit() Status {
	t.LC.exit()
	return Exited
}

// End marks normal completion of a raw body. Reaching it is an exit.
func (t *Thread) End() Status { return t.Exit() }
