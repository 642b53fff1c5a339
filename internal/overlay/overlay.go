// Package overlay draws debug annotations on frames and shows them in a window.
package overlay

import (
	"image"
	"image/color"

	"github.com/ayusman/handmouse/internal/detector"
	"github.com/ayusman/handmouse/internal/gesture"
	"gocv.io/x/gocv"
)

// gocv takes RGBA and writes it as BGR.
var (
	LandmarkColor   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	ConnectionColor = color.RGBA{R: 224, G: 224, B: 224, A: 0}
	LabelColor      = color.RGBA{R: 0, G: 0, B: 255, A: 0}
)

// LabelOrigin is the baseline position of the action label.
var LabelOrigin = image.Point{X: 30, Y: 30}

const (
	landmarkRadius      = 5
	connectionThickness = 2
	labelScale          = 1.0
	labelThickness      = 3
)

// DrawSkeleton draws the hand connections and landmark dots onto frame.
func DrawSkeleton(frame *gocv.Mat, h *detector.HandLandmarks) {
	if frame == nil || frame.Empty() || h == nil {
		return
	}
	w, ht := frame.Cols(), frame.Rows()

	for _, c := range detector.HandConnections {
		x0, y0 := h.Pixel(c[0], w, ht)
		x1, y1 := h.Pixel(c[1], w, ht)
		gocv.Line(frame, image.Pt(x0, y0), image.Pt(x1, y1), ConnectionColor, connectionThickness)
	}

	for i := range h.Points {
		x, y := h.Pixel(i, w, ht)
		gocv.Circle(frame, image.Pt(x, y), landmarkRadius, LandmarkColor, -1)
	}
}

// DrawLabel writes the action name in the top-left corner. Moves and empty
// decisions are not labelled.
func DrawLabel(frame *gocv.Mat, a gesture.Action) bool {
	if frame == nil || frame.Empty() || !a.IsClick() {
		return false
	}
	gocv.PutText(frame, a.String(), LabelOrigin, gocv.FontHersheySimplex, labelScale, LabelColor, labelThickness)
	return true
}
