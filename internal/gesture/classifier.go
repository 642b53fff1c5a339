// Package gesture maps hand landmarks to mouse actions.
package gesture

import (
	"fmt"

	"github.com/ayusman/handmouse/internal/detector"
	"github.com/ayusman/handmouse/internal/geometry"
)

// Action is the mouse action selected for a frame.
type Action int

const (
	None Action = iota
	Move
	LeftClick
	RightClick
	DoubleClick
)

var actionNames = map[Action]string{
	None:        "none",
	Move:        "move",
	LeftClick:   "left_click",
	RightClick:  "right_click",
	DoubleClick: "double_click",
}

// String returns the label drawn on the debug overlay and stored in the journal.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if name == s {
			return a, true
		}
	}
	return None, false
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, ok := ParseAction(string(text))
	if !ok {
		return fmt.Errorf("unknown action %q", text)
	}
	*a = parsed
	return nil
}

// IsClick reports whether the action presses a button.
func (a Action) IsClick() bool {
	return a == LeftClick || a == RightClick || a == DoubleClick
}

// Features are the measurements the classifier works on.
type Features struct {
	IndexAngle  float64 `json:"index_angle"`  // tip-PIP-MCP angle of the index finger, degrees
	MiddleAngle float64 `json:"middle_angle"` // tip-PIP-MCP angle of the middle finger, degrees
	Spread      float64 `json:"spread"`       // thumb tip to index MCP distance on a 0-1000 scale
}

// Extract computes the classifier features for a hand.
func Extract(h *detector.HandLandmarks) Features {
	return Features{
		IndexAngle:  geometry.Angle(h.At(detector.IndexTip), h.At(detector.IndexPIP), h.At(detector.IndexMCP)),
		MiddleAngle: geometry.Angle(h.At(detector.MiddleTip), h.At(detector.MiddlePIP), h.At(detector.MiddleMCP)),
		Spread:      geometry.Distance(h.At(detector.IndexMCP), h.At(detector.ThumbTip)),
	}
}

// Thresholds are the fixed cut-offs the predicates compare against.
// All comparisons are strict.
type Thresholds struct {
	MoveIndexMin float64 `json:"move_index_min"` // index angle above this allows a move
	Spread       float64 `json:"spread"`         // pinch boundary: below moves, above clicks
	Bent         float64 `json:"bent"`           // finger angle boundary between bent and straight
}

// DefaultThresholds returns the stock cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MoveIndexMin: 90,
		Spread:       50,
		Bent:         50,
	}
}

// IsMove reports an extended index finger with the thumb tucked and the middle finger straight.
func (t Thresholds) IsMove(f Features) bool {
	return f.IndexAngle > t.MoveIndexMin && f.Spread < t.Spread && f.MiddleAngle > t.Bent
}

// IsLeftClick reports a spread thumb with only the index finger bent.
func (t Thresholds) IsLeftClick(f Features) bool {
	return f.Spread > t.Spread && f.IndexAngle < t.Bent && f.MiddleAngle > t.Bent
}

// IsRightClick reports a spread thumb with only the middle finger bent.
func (t Thresholds) IsRightClick(f Features) bool {
	return f.Spread > t.Spread && f.IndexAngle > t.Bent && f.MiddleAngle < t.Bent
}

// IsDoubleClick reports a spread thumb with both fingers bent.
func (t Thresholds) IsDoubleClick(f Features) bool {
	return f.Spread > t.Spread && f.IndexAngle < t.Bent && f.MiddleAngle < t.Bent
}

// Classifier evaluates the predicates in priority order.
type Classifier struct {
	Thresholds Thresholds
}

// NewClassifier creates a Classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{Thresholds: t}
}

// Classify returns the first action whose predicate holds, checked in the
// order Move, LeftClick, RightClick, DoubleClick. The conditions are not
// guaranteed disjoint, so the order is the tie-break.
// NaN features fail every comparison and yield None.
func (c *Classifier) Classify(f Features) Action {
	t := c.Thresholds
	switch {
	case t.IsMove(f):
		return Move
	case t.IsLeftClick(f):
		return LeftClick
	case t.IsRightClick(f):
		return RightClick
	case t.IsDoubleClick(f):
		return DoubleClick
	default:
		return None
	}
}

// ClassifyHand extracts features from h and classifies them.
func (c *Classifier) ClassifyHand(h *detector.HandLandmarks) (Action, Features) {
	f := Extract(h)
	return c.Classify(f), f
}
