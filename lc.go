// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pt

// Local continuations are the resume-point primitive underneath protothreads.
// An LC records where, inside a single function body, execution should pick
// up on the next invocation. No stack frame is preserved between invocations;
// the LC is the only thing that survives.

// LC is a local continuation: the saved resume point within one protothread
// body. The zero value is the sentinel meaning "no saved point, start from
// the top".
//
// Encoding:
//   - 0: sentinel, the next invocation runs the body from the top
//   - k+1: a marker for blocking site k, the next invocation re-tests
//     site k's condition and continues from there
//   - all-ones: terminal, the protothread has exited and further invocations
//     run nothing until Init
//
// At most one marker is live at a time. A marker is produced only immediately
// before a blocking site's condition test, and consumed only by the dispatch
// at body entry. Site identity must be unique per static blocking site: the
// step DSL uses compiled instruction indices, raw bodies number their sites
// by hand starting from 1 (site 0 would collide with the sentinel dispatch).
type LC uint32

// lcExited is the terminal value. It is distinct from the sentinel so an
// exited protothread stays exited: clearing the marker alone would silently
// restart the body on a stray re-invocation.
const lcExited = ^LC(0)

// Init resets the continuation to the sentinel. It must run before the first
// invocation and again whenever the owner reuses the control block.
func (lc *LC) Init() { *lc = 0 }

// Set records blocking site site as the resume point. Issued immediately
// before the site's condition is tested, never elsewhere. Re-setting the
// same site on a resumed invocation is harmless.
func (lc *LC) Set(site int) { *lc = LC(site) + 1 }

// Resume reads the saved point at body entry. It returns the site to resume
// at and whether a marker was present; with no marker (or after exit) it
// returns site 0, directing dispatch to the top of the body.
func (lc LC) Resume() (site int, resumed bool) {
	if lc == 0 || lc == lcExited {
		return 0, false
	}
	return int(lc) - 1, true
}

// Exited reports whether the continuation is parked at the terminal value.
// Program.Invoke consults it so an exited protothread executes nothing;
// raw bodies may guard with it likewise.
func (lc LC) Exited() bool { return lc == lcExited }

// exit clears any live marker and parks the continuation at the terminal
// value in one store.
func (lc *LC) exit() { *lc = lcExited }
