package mouse

import (
	"fmt"
	"sync"
)

// Call is one recorded driver invocation.
type Call struct {
	Op     string
	X, Y   int
	Button Button
	Count  int
}

// String renders the call compactly, e.g. "move(10,20)" or "click(left,2)".
func (c Call) String() string {
	switch c.Op {
	case "move":
		return fmt.Sprintf("move(%d,%d)", c.X, c.Y)
	case "click":
		return fmt.Sprintf("click(%s,%d)", c.Button, c.Count)
	default:
		return fmt.Sprintf("%s(%s)", c.Op, c.Button)
	}
}

// RecordingDriver is a Driver that records calls instead of touching the OS.
type RecordingDriver struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecordingDriver creates an empty RecordingDriver.
func NewRecordingDriver() *RecordingDriver {
	return &RecordingDriver{}
}

func (r *RecordingDriver) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// MoveTo records a move.
func (r *RecordingDriver) MoveTo(x, y int) {
	r.record(Call{Op: "move", X: x, Y: y})
}

// Press records a press.
func (r *RecordingDriver) Press(b Button) {
	r.record(Call{Op: "press", Button: b})
}

// Release records a release.
func (r *RecordingDriver) Release(b Button) {
	r.record(Call{Op: "release", Button: b})
}

// Click records a click.
func (r *RecordingDriver) Click(b Button, count int) {
	r.record(Call{Op: "click", Button: b, Count: count})
}

// Calls returns a copy of the recorded calls.
func (r *RecordingDriver) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Reset forgets recorded calls.
func (r *RecordingDriver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
