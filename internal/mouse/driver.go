// Package mouse turns gesture decisions into OS pointer events.
package mouse

// Button identifies a mouse button.
type Button string

const (
	Left  Button = "left"
	Right Button = "right"
)

// Driver is the OS pointer-control capability.
// Calls are fire-and-forget; implementations log failures instead of returning them.
type Driver interface {
	// MoveTo sets the absolute pointer position in screen pixels.
	MoveTo(x, y int)
	// Press holds a button down.
	Press(b Button)
	// Release lets a held button go.
	Release(b Button)
	// Click presses and releases a button count times in quick succession.
	Click(b Button, count int)
}
