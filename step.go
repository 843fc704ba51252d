// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pt

// Defunctionalized protothread bodies. Instead of macro-generated jumps,
// a body is a tree of Step nodes compiled to a flat instruction list whose
// indices double as blocking-site identities. Dispatch uses type switches,
// not tags — the instruction interface is a pure marker.

// Step is a node of a protothread body. Bodies are assembled from the
// constructors below and compiled by NewProgram; the interface is closed.
type Step[E any] interface {
	compile(p *Program[E])
}

// Ctl is the verdict a Control segment returns.
type Ctl uint8

const (
	// Continue falls through to the next step.
	Continue Ctl = iota

	// Restart returns the protothread to the top of its body and suspends,
	// exactly as Thread.Restart does for raw bodies.
	Restart

	// Exit terminates the protothread immediately, skipping the rest of
	// the body.
	Exit
)

// Exec appends a straight-line segment. f runs once each time control passes
// through it and is skipped entirely when an invocation resumes at a later
// site. It must not block; blocking belongs to WaitUntil and its derivatives.
func Exec[E any](f func(E)) Step[E] { return execStep[E]{f: f} }

// Control appends a segment that can redirect control: Continue falls
// through, Restart re-runs the body from the top on the next invocation,
// Exit terminates the protothread on the spot.
func Control[E any](f func(E) Ctl) Step[E] { return ctlStep[E]{f: f} }

// WaitUntil appends a blocking site. The site records itself as the resume
// point, then tests cond: false suspends the invocation, true falls through.
// Every subsequent invocation that resumes here re-tests cond from scratch,
// so cond must be re-evaluable and read only state that outlives suspension.
func WaitUntil[E any](cond func(E) bool) Step[E] { return waitStep[E]{cond: cond} }

// WaitWhile blocks for as long as cond holds.
func WaitWhile[E any](cond func(E) bool) Step[E] {
	return waitStep[E]{cond: func(e E) bool { return !cond(e) }}
}

// WaitThread appends a blocking site that drives a child protothread. Each
// arrival invokes child once; Waiting suspends the parent here, Exited falls
// through in the same invocation. The child's control block must already be
// initialized — use Spawn to get the init for free.
func WaitThread[E any](child func(E) Status) Step[E] {
	return waitChildStep[E]{child: child}
}

// Spawn initializes a child protothread's control block, then waits for the
// child to exit. block selects the child's control block out of the owner
// storage. The init compiles to its own instruction ahead of the wait, and
// only the wait records a marker, so a resumed invocation lands past the
// init and the child is initialized exactly once per pass.
func Spawn[E any](block func(E) *Thread, child func(E) Status) Step[E] {
	return seqStep[E]{
		Exec(func(e E) { block(e).Init() }),
		WaitThread(child),
	}
}

// Yield suspends unconditionally and resumes on the next invocation. Every
// fresh arrival at the site suspends; only the invocation that resumes here
// passes, and it passes once — a loop re-arriving at the same yield within
// one invocation suspends again.
func Yield[E any]() Step[E] { return yieldStep[E]{} }

// YieldUntil is Yield with a guard: the site always suspends on arrival, and
// a resumed invocation passes only once cond holds.
func YieldUntil[E any](cond func(E) bool) Step[E] { return yieldStep[E]{cond: cond} }

// Loop repeats body forever. Escape is explicit: a Control step returning
// Exit or Restart, or the owner ceasing to invoke. The loop jump records no
// marker; it is not a blocking site.
func Loop[E any](body ...Step[E]) Step[E] { return loopStep[E]{body: body} }

// While repeats body for as long as cond holds. cond is tested at the loop
// head on every iteration, reading owner storage like any wait condition.
func While[E any](cond func(E) bool, body ...Step[E]) Step[E] {
	return whileStep[E]{cond: cond, body: body}
}

// Step tree nodes. compile emits flat instructions in source order, so a
// blocking site's instruction index is stable for the life of the Program.

type execStep[E any] struct{ f func(E) }

func (s execStep[E]) compile(p *Program[E]) { p.emit(&execInstr[E]{f: s.f}) }

type ctlStep[E any] struct{ f func(E) Ctl }

func (s ctlStep[E]) compile(p *Program[E]) { p.emit(&ctlInstr[E]{f: s.f}) }

type waitStep[E any] struct{ cond func(E) bool }

func (s waitStep[E]) compile(p *Program[E]) { p.emit(&waitInstr[E]{cond: s.cond}) }

type waitChildStep[E any] struct{ child func(E) Status }

func (s waitChildStep[E]) compile(p *Program[E]) { p.emit(&waitChildInstr[E]{child: s.child}) }

type yieldStep[E any] struct{ cond func(E) bool }

func (s yieldStep[E]) compile(p *Program[E]) { p.emit(&yieldInstr[E]{cond: s.cond}) }

// seqStep splices a fixed sequence of steps in place. Spawn and the
// semaphore steps use it to pair a non-blocking instruction with the
// blocking site that owns the marker.
type seqStep[E any] []Step[E]

func (s seqStep[E]) compile(p *Program[E]) {
	for _, st := range s {
		st.compile(p)
	}
}

type loopStep[E any] struct{ body []Step[E] }

func (s loopStep[E]) compile(p *Program[E]) {
	start := len(p.code)
	for _, st := range s.body {
		st.compile(p)
	}
	p.emit(&jumpInstr[E]{target: start})
}

type whileStep[E any] struct {
	cond func(E) bool
	body []Step[E]
}

func (s whileStep[E]) compile(p *Program[E]) {
	head := &condJumpInstr[E]{cond: s.cond}
	start := p.emit(head)
	for _, st := range s.body {
		st.compile(p)
	}
	p.emit(&jumpInstr[E]{target: start})
	head.target = len(p.code)
}

// Flat instructions. The evaluator in program.go dispatches on the concrete
// types; instr is a pure marker interface.

type instr[E any] interface {
	instr()
}

// execInstr runs a side-effecting segment and falls through.
type execInstr[E any] struct{ f func(E) }

func (*execInstr[E]) instr() {}

// ctlInstr runs a segment whose verdict redirects control.
type ctlInstr[E any] struct{ f func(E) Ctl }

func (*ctlInstr[E]) instr() {}

// waitInstr is a blocking site: set marker, test, suspend or fall through.
type waitInstr[E any] struct{ cond func(E) bool }

func (*waitInstr[E]) instr() {}

// waitChildInstr is a blocking site whose condition is a child invocation.
type waitChildInstr[E any] struct{ child func(E) Status }

func (*waitChildInstr[E]) instr() {}

// yieldInstr is a blocking site that always suspends on fresh arrival.
// A nil cond is an unconditional yield.
type yieldInstr[E any] struct{ cond func(E) bool }

func (*yieldInstr[E]) instr() {}

// jumpInstr moves the program counter without recording a marker.
type jumpInstr[E any] struct{ target int }

func (*jumpInstr[E]) instr() {}

// condJumpInstr enters the following block when cond holds, otherwise jumps
// past it. No marker is recorded; it is not a blocking site.
type condJumpInstr[E any] struct {
	cond   func(E) bool
	target int
}

func (*condJumpInstr[E]) instr() {}
