// Package detector provides hand detection interfaces and landmark types.
package detector

import (
	"errors"
	"fmt"

	"github.com/ayusman/handmouse/internal/geometry"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// ErrInvalidLandmarks is returned when a landmark list cannot form a hand.
var ErrInvalidLandmarks = errors.New("invalid hand landmarks")

// HandConnections lists the landmark pairs that make up the hand skeleton.
var HandConnections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// Point3D represents a landmark position. X and Y are normalized to the frame
// width and height; Z is relative depth and is not used for classification.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// XY drops the depth component.
func (p Point3D) XY() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

// HandLandmarks represents the 21 hand landmarks reported for one hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// FromPoints builds a HandLandmarks from an ordered landmark list.
// The list must hold exactly NumLandmarks points; anything else, including an
// empty list, returns ErrInvalidLandmarks.
func FromPoints(points []Point3D) (*HandLandmarks, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrInvalidLandmarks)
	}
	if len(points) != NumLandmarks {
		return nil, fmt.Errorf("%w: got %d points, want %d", ErrInvalidLandmarks, len(points), NumLandmarks)
	}

	h := &HandLandmarks{}
	copy(h.Points[:], points)
	return h, nil
}

// At returns the planar position of landmark i.
func (h *HandLandmarks) At(i int) geometry.Point {
	return h.Points[i].XY()
}

// Pixel returns landmark i scaled to a frame of the given size, truncated to integers.
func (h *HandLandmarks) Pixel(i, width, height int) (int, int) {
	p := h.Points[i]
	return int(p.X * float64(width)), int(p.Y * float64(height))
}
