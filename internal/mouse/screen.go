package mouse

import (
	"errors"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when no monitor dimensions can be determined.
var ErrNoDisplay = errors.New("no active display")

// Screen holds the dimensions of the monitor the pointer is mapped onto.
type Screen struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PrimaryScreen returns the size of the first active display.
// It falls back to robotgo's main screen size when display enumeration is unavailable.
func PrimaryScreen() (Screen, error) {
	if screenshot.NumActiveDisplays() > 0 {
		bounds := screenshot.GetDisplayBounds(0)
		if bounds.Dx() > 0 && bounds.Dy() > 0 {
			return Screen{Width: bounds.Dx(), Height: bounds.Dy()}, nil
		}
	}

	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return Screen{}, ErrNoDisplay
	}
	return Screen{Width: w, Height: h}, nil
}
