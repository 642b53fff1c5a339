package mouse

import (
	"github.com/go-vgo/robotgo"
	"github.com/kataras/golog"
)

var logger = golog.Child("[mouse]")

// RobotgoDriver injects pointer events through robotgo.
type RobotgoDriver struct{}

// NewRobotgoDriver creates a driver bound to the local display.
func NewRobotgoDriver() *RobotgoDriver {
	return &RobotgoDriver{}
}

// MoveTo sets the pointer position.
func (d *RobotgoDriver) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// Press holds b down.
func (d *RobotgoDriver) Press(b Button) {
	if err := robotgo.Toggle(string(b)); err != nil {
		logger.Debugf("press %s: %v", b, err)
	}
}

// Release lets b go.
func (d *RobotgoDriver) Release(b Button) {
	if err := robotgo.Toggle(string(b), "up"); err != nil {
		logger.Debugf("release %s: %v", b, err)
	}
}

// Click clicks b once, or double clicks when count is 2 or more.
func (d *RobotgoDriver) Click(b Button, count int) {
	switch {
	case count <= 0:
		return
	case count == 1:
		robotgo.Click(string(b))
	default:
		robotgo.Click(string(b), true)
	}
}
