// Package app runs the frame loop that turns hand poses into pointer actions.
package app

import (
	"errors"
	"sync"

	"github.com/ayusman/handmouse/internal/capture"
	"github.com/ayusman/handmouse/internal/detector"
	"github.com/ayusman/handmouse/internal/gesture"
	"github.com/ayusman/handmouse/internal/mouse"
	"github.com/ayusman/handmouse/internal/overlay"
	"github.com/ayusman/handmouse/internal/store"
	"github.com/kataras/golog"
)

// ErrAlreadyRunning is returned when Run is called while a loop is active.
var ErrAlreadyRunning = errors.New("frame loop already running")

var logger = golog.Child("[app]")

// Config holds the loop settings.
type Config struct {
	CameraID     int
	Preprocess   capture.PreprocessOptions
	Thresholds   gesture.Thresholds
	Journal      bool
	JournalMoves bool
}

// DefaultConfig returns the stock loop settings.
func DefaultConfig() Config {
	return Config{
		Preprocess: capture.DefaultPreprocessOptions(),
		Thresholds: gesture.DefaultThresholds(),
		Journal:    true,
	}
}

// Deps are the collaborators the loop drives. Display and Store are optional.
type Deps struct {
	Camera   capture.Camera
	Detector detector.Detector
	Mouse    *mouse.Controller
	Display  overlay.Display
	Store    *store.Store
}

// App owns the camera, detector, pointer controller and display for the
// duration of Run. Only the enabled flag, the status counters and the
// Monitor are shared with other goroutines.
type App struct {
	config     Config
	camera     capture.Camera
	detector   detector.Detector
	classifier *gesture.Classifier
	mouse      *mouse.Controller
	display    overlay.Display
	store      *store.Store
	monitor    *Monitor

	mu       sync.RWMutex
	enabled  bool
	running  bool
	session  *store.Session
	stats    Stats
	onAction func(gesture.Action)
}

// Stats are the counters of the current or last loop run.
type Stats struct {
	Frames     int            `json:"frames"`
	Hands      int            `json:"hands"`
	Actions    int            `json:"actions"`
	LastAction gesture.Action `json:"last_action"`
}

// Status is a point-in-time view of the loop.
type Status struct {
	Enabled   bool         `json:"enabled"`
	Running   bool         `json:"running"`
	SessionID string       `json:"session_id,omitempty"`
	Screen    mouse.Screen `json:"screen"`
	Stats
}

// New creates an App. Detection starts enabled.
func New(config Config, deps Deps) *App {
	display := deps.Display
	if display == nil {
		display = overlay.Headless{}
	}

	return &App{
		config:     config,
		camera:     deps.Camera,
		detector:   deps.Detector,
		classifier: gesture.NewClassifier(config.Thresholds),
		mouse:      deps.Mouse,
		display:    display,
		store:      deps.Store,
		monitor:    NewMonitor(),
		enabled:    true,
	}
}

// SetEnabled enables or disables dispatching of pointer actions. Frames are
// still captured, classified and rendered while disabled.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled != enabled {
		logger.Infof("pointer control enabled=%v", enabled)
	}
	a.enabled = enabled
}

// IsEnabled returns whether pointer actions are dispatched.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// OnAction registers fn to be called whenever the dispatched action changes.
// It runs on the loop goroutine and must not block.
func (a *App) OnAction(fn func(gesture.Action)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onAction = fn
}

// Monitor returns the snapshot feed of rendered frames and decisions.
func (a *App) Monitor() *Monitor {
	return a.monitor
}

// Status returns the current loop state.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := Status{
		Enabled: a.enabled,
		Running: a.running,
		Stats:   a.stats,
	}
	if a.session != nil {
		s.SessionID = a.session.ID
	}
	if a.mouse != nil {
		s.Screen = a.mouse.Screen()
	}
	return s
}
