package app

import (
	"context"
	"fmt"

	"github.com/ayusman/handmouse/internal/capture"
	"github.com/ayusman/handmouse/internal/detector"
	"github.com/ayusman/handmouse/internal/gesture"
	"github.com/ayusman/handmouse/internal/overlay"
	"gocv.io/x/gocv"
)

// Decision is the outcome of one processed hand.
type Decision struct {
	Action     gesture.Action   `json:"action"`
	Features   gesture.Features `json:"features"`
	X          int              `json:"x,omitempty"`
	Y          int              `json:"y,omitempty"`
	Dispatched bool             `json:"dispatched"`
}

// Run opens the camera and processes frames until the display asks to quit,
// ctx is cancelled or a frame cannot be captured or detected. The camera and
// display are closed on return. A quit or cancellation returns nil.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	a.stats = Stats{}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			logger.Warnf("close camera: %v", err)
		}
	}()
	defer a.display.Close()

	a.startSession()
	defer a.finishSession()

	logger.Infof("frame loop started")
	for {
		select {
		case <-ctx.Done():
			logger.Infof("frame loop cancelled")
			return nil
		default:
		}

		quit, err := a.Step()
		if err != nil {
			logger.Errorf("frame loop stopped: %v", err)
			return err
		}
		if quit {
			logger.Infof("quit requested")
			return nil
		}
	}
}

// Step runs one loop iteration: capture, prepare, detect, classify, dispatch,
// render. It reports whether the display asked to quit.
func (a *App) Step() (bool, error) {
	raw, err := a.camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("read frame: %w", err)
	}

	frame, err := capture.Preprocess(*raw, a.config.Preprocess)
	raw.Close()
	if err != nil {
		frame.Close()
		return false, fmt.Errorf("preprocess frame: %w", err)
	}
	defer frame.Close()

	hands, err := a.detector.Detect(&frame)
	if err != nil {
		return false, fmt.Errorf("detect hands: %w", err)
	}

	hand := detector.First(hands)
	decision := Decision{Action: gesture.None}
	if hand != nil {
		overlay.DrawSkeleton(&frame, hand)
		decision = a.ProcessHand(hand, frame.Cols(), frame.Rows())
		if decision.Dispatched {
			overlay.DrawLabel(&frame, decision.Action)
		}
	}

	a.count(hand != nil, decision)
	a.publish(&frame, hand, decision)

	return a.display.Show(&frame), nil
}

// ProcessHand classifies one hand and, when enabled, drives the pointer. Moves
// follow the index fingertip on a frame of the given size.
func (a *App) ProcessHand(hand *detector.HandLandmarks, width, height int) Decision {
	action, features := a.classifier.ClassifyHand(hand)
	d := Decision{Action: action, Features: features}

	if action == gesture.None || !a.IsEnabled() {
		return d
	}

	switch action {
	case gesture.Move:
		x, y := hand.Pixel(detector.IndexTip, width, height)
		target := a.mouse.Move(x, y, width, height)
		d.X, d.Y = target.X, target.Y
	case gesture.LeftClick:
		a.mouse.LeftClick()
	case gesture.RightClick:
		a.mouse.RightClick()
	case gesture.DoubleClick:
		a.mouse.DoubleClick()
	}
	d.Dispatched = true

	if action.IsClick() {
		logger.Debugf("%s (index=%.1f middle=%.1f spread=%.1f)",
			action, features.IndexAngle, features.MiddleAngle, features.Spread)
	}

	a.journal(d)
	return d
}

func (a *App) count(handSeen bool, d Decision) {
	a.mu.Lock()
	a.stats.Frames++
	if handSeen {
		a.stats.Hands++
	}

	var notify func(gesture.Action)
	if d.Dispatched {
		a.stats.Actions++
		if d.Action != a.stats.LastAction {
			notify = a.onAction
		}
		a.stats.LastAction = d.Action
	}
	a.mu.Unlock()

	if notify != nil {
		notify(d.Action)
	}
}

func (a *App) publish(frame *gocv.Mat, hand *detector.HandLandmarks, d Decision) {
	var jpeg []byte
	if a.monitor.Watching() {
		buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
		if err != nil {
			logger.Debugf("encode preview: %v", err)
		} else {
			jpeg = append([]byte(nil), buf.GetBytes()...)
			buf.Close()
		}
	}
	a.monitor.Publish(jpeg, hand, d)
}
