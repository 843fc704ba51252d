// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pt

// Program is a compiled protothread body: a flat instruction list evaluated
// iteratively, one invocation at a time. Construction allocates (the
// instruction list and its closures); invocation does not.
//
// A Program carries no per-thread state and may drive any number of control
// blocks concurrently in the cooperative sense — each (Thread, E) pair is an
// independent protothread running the same body.
type Program[E any] struct {
	code []instr[E]
}

// NewProgram compiles a body from a sequence of steps. Blocking sites take
// their marker identity from their instruction index, so uniqueness per
// static site holds by construction.
func NewProgram[E any](steps ...Step[E]) *Program[E] {
	p := &Program[E]{}
	for _, s := range steps {
		s.compile(p)
	}
	return p
}

// emit appends one instruction and returns its index.
func (p *Program[E]) emit(in instr[E]) int {
	p.code = append(p.code, in)
	return len(p.code) - 1
}

// Invoke runs one invocation of the protothread: it resumes at the saved
// site (or the top of the body), executes until a blocking site suspends or
// the body terminates, and returns the status. Running off the end of the
// body is an exit.
//
// An exited control block stays exited: Invoke returns Exited without
// executing any instruction until the owner calls Init.
func (p *Program[E]) Invoke(t *Thread, in E) Status {
	if t.LC.Exited() {
		return Exited
	}
	i, resumed := t.LC.Resume()
	// resumedAt lets a yield site distinguish the one resume landing from
	// every other arrival within this invocation.
	resumedAt := -1
	if resumed {
		resumedAt = i
	}
	for i < len(p.code) {
		switch s := p.code[i].(type) {
		case *execInstr[E]:
			s.f(in)
			i++
		case *ctlInstr[E]:
			switch s.f(in) {
			case Restart:
				return t.Restart()
			case Exit:
				return t.Exit()
			default:
				i++
			}
		case *waitInstr[E]:
			t.LC.Set(i)
			if !s.cond(in) {
				return Waiting
			}
			i++
		case *waitChildInstr[E]:
			t.LC.Set(i)
			if StillRunning(s.child(in)) {
				return Waiting
			}
			i++
		case *yieldInstr[E]:
			if i != resumedAt {
				t.LC.Set(i)
				return Waiting
			}
			resumedAt = -1
			if s.cond != nil && !s.cond(in) {
				return Waiting
			}
			i++
		case *jumpInstr[E]:
			i = s.target
		case *condJumpInstr[E]:
			if s.cond(in) {
				i++
			} else {
				i = s.target
			}
		default:
			panic("pt: unknown instruction type")
		}
	}
	return t.Exit()
}

// Func adapts the program to the ThreadFunc shape, for owners and parents
// that drive protothreads through the plain function contract.
func (p *Program[E]) Func() ThreadFunc[E] {
	return p.Invoke
}
