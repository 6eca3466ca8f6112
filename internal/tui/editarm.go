package tui

import "time"

// doublePressWindow is the hard constant for double-activation detection:
// two presses on the same row within this window enter edit mode.
const doublePressWindow = 500 * time.Millisecond

// editArm holds the transient "which label was activated once, and when"
// record. It is mutated only from the update loop, but it is genuinely
// shared across rows, so every terminal transition must Reset it to avoid
// stale arming.
type editArm struct {
	armed bool
	id    int64
	at    time.Time
}

// Press records an activation on the given row and reports whether it
// completes a double activation. Activations on different rows never
// combine; a press outside the window (or on another row) re-arms on the
// new press, discarding the previous arm.
func (a *editArm) Press(id int64, now time.Time) bool {
	if a.armed && a.id == id && now.Sub(a.at) < doublePressWindow {
		a.Reset()
		return true
	}
	a.armed = true
	a.id = id
	a.at = now
	return false
}

func (a *editArm) Reset() {
	*a = editArm{}
}
