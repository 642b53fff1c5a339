package detector

import (
	"math"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands  []HandLandmarks
	script [][]HandLandmarks
	err    error
	calls  int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// Script makes successive Detect calls return the given results in order.
// The last entry repeats once the script is exhausted. A scripted result
// takes precedence over SetHands.
func (m *MockDetector) Script(results ...[]HandLandmarks) {
	m.script = results
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect was invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		i := m.calls - 1
		if i >= len(m.script) {
			i = len(m.script) - 1
		}
		return m.script[i], nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

const (
	fixtureSegment = 0.08
	fixtureOriginX = 0.5
	fixtureOriginY = 0.55
)

// PoseLandmarks builds a right hand whose index and middle fingers bend by the
// given angles (degrees, as measured tip-PIP-MCP) and whose thumb tip sits
// spread/1000 to the right of the index MCP.
func PoseLandmarks(indexAngle, middleAngle, spread float64) HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: fixtureOriginX, Y: fixtureOriginY + 0.25}

	// Index and middle fingers: MCP straight below PIP, tip rotated by the angle.
	placeFinger(&h, IndexMCP, IndexPIP, IndexDIP, IndexTip, fixtureOriginX+0.04, indexAngle)
	placeFinger(&h, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, fixtureOriginX-0.02, middleAngle)

	// Ring and pinky folded near the palm.
	for i, base := range []int{RingMCP, PinkyMCP} {
		x := fixtureOriginX - 0.08 - float64(i)*0.06
		h.Points[base] = Point3D{X: x, Y: fixtureOriginY + 0.1}
		h.Points[base+1] = Point3D{X: x, Y: fixtureOriginY + 0.05}
		h.Points[base+2] = Point3D{X: x + 0.01, Y: fixtureOriginY + 0.08}
		h.Points[base+3] = Point3D{X: x + 0.01, Y: fixtureOriginY + 0.11}
	}

	// Thumb chain ending at the requested spread from the index MCP.
	indexMCP := h.Points[IndexMCP]
	tip := Point3D{X: indexMCP.X + spread/1000, Y: indexMCP.Y}
	h.Points[ThumbCMC] = Point3D{X: fixtureOriginX + 0.05, Y: fixtureOriginY + 0.22}
	h.Points[ThumbMCP] = Point3D{X: (h.Points[ThumbCMC].X + tip.X) / 2, Y: (h.Points[ThumbCMC].Y + tip.Y) / 2}
	h.Points[ThumbIP] = Point3D{X: (h.Points[ThumbMCP].X + tip.X) / 2, Y: (h.Points[ThumbMCP].Y + tip.Y) / 2}
	h.Points[ThumbTip] = tip

	return h
}

func placeFinger(h *HandLandmarks, mcp, pip, dip, tip int, x, angle float64) {
	pipPos := Point3D{X: x, Y: fixtureOriginY}
	h.Points[pip] = pipPos
	h.Points[mcp] = Point3D{X: x, Y: fixtureOriginY + fixtureSegment}

	// The MCP ray points along +Y (90 degrees); the tip ray sits angle degrees further.
	theta := (90 + angle) * math.Pi / 180
	h.Points[tip] = Point3D{
		X: pipPos.X + fixtureSegment*math.Cos(theta),
		Y: pipPos.Y + fixtureSegment*math.Sin(theta),
	}
	h.Points[dip] = Point3D{
		X: (pipPos.X + h.Points[tip].X) / 2,
		Y: (pipPos.Y + h.Points[tip].Y) / 2,
	}
}

// PointingLandmarks returns a hand that classifies as a cursor move:
// index extended, thumb tucked against the index base, middle finger extended.
func PointingLandmarks() HandLandmarks {
	return PoseLandmarks(100, 60, 30)
}

// LeftClickLandmarks returns a hand with the index bent and thumb spread.
func LeftClickLandmarks() HandLandmarks {
	return PoseLandmarks(40, 70, 60)
}

// RightClickLandmarks returns a hand with the middle finger bent and thumb spread.
func RightClickLandmarks() HandLandmarks {
	return PoseLandmarks(60, 40, 60)
}

// DoubleClickLandmarks returns a hand with index and middle bent and thumb spread.
func DoubleClickLandmarks() HandLandmarks {
	return PoseLandmarks(40, 40, 60)
}

// RestingLandmarks returns a hand that matches no gesture.
func RestingLandmarks() HandLandmarks {
	return PoseLandmarks(70, 70, 30)
}
