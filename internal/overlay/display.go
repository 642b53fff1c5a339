package overlay

import (
	"sync"

	"gocv.io/x/gocv"
)

// WindowTitle is the name of the debug window.
const WindowTitle = "Camera Feed"

// QuitKey closes the debug window and ends the loop.
const QuitKey = 'q'

// Display presents rendered frames. Show reports whether the user asked to quit.
type Display interface {
	Show(frame *gocv.Mat) bool
	Close() error
}

// Window is a Display backed by an OpenCV highgui window. It must be used from
// the goroutine that created it.
type Window struct {
	window *gocv.Window
}

// NewWindow opens the debug window.
func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

// Show draws the frame and polls the keyboard for one millisecond.
func (w *Window) Show(frame *gocv.Mat) bool {
	w.window.IMShow(*frame)
	return w.window.WaitKey(1)&0xFF == QuitKey
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.window.Close()
}

// Headless discards frames and never asks to quit.
type Headless struct{}

func (Headless) Show(*gocv.Mat) bool { return false }

func (Headless) Close() error { return nil }

// RecordingDisplay counts frames and asks to quit after QuitAfter frames
// when QuitAfter is positive.
type RecordingDisplay struct {
	QuitAfter int

	mu     sync.Mutex
	shown  int
	closed bool
}

func (d *RecordingDisplay) Show(frame *gocv.Mat) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown++
	return d.QuitAfter > 0 && d.shown >= d.QuitAfter
}

func (d *RecordingDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Shown returns how many frames were presented.
func (d *RecordingDisplay) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Closed reports whether Close was called.
func (d *RecordingDisplay) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
