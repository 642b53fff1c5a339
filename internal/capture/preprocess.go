package capture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Preprocess defaults: rotate a quarter turn, trim the sides, scale to VGA.
const (
	DefaultRotation = 90.0
	DefaultCropX    = 140
	DefaultWidth    = 640
	DefaultHeight   = 480
)

// PreprocessOptions controls how raw camera frames are prepared for detection.
type PreprocessOptions struct {
	// Rotation is applied about the frame centre, counter clockwise, keeping the
	// original canvas size. Corners that leave the canvas are cut off.
	Rotation float64
	// CropX columns are dropped from both the left and right edge after rotation.
	CropX int
	// Width and Height are the final frame size.
	Width  int
	Height int
}

// DefaultPreprocessOptions returns the stock preparation pipeline.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		Rotation: DefaultRotation,
		CropX:    DefaultCropX,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
}

// Preprocess rotates, crops and resizes src into a new Mat owned by the caller.
func Preprocess(src gocv.Mat, opts PreprocessOptions) (gocv.Mat, error) {
	w, h := src.Cols(), src.Rows()
	if w == 0 || h == 0 {
		return gocv.NewMat(), ErrEmptyFrame
	}
	if opts.CropX < 0 || 2*opts.CropX >= w {
		return gocv.NewMat(), fmt.Errorf("crop of %d px per side does not fit a %d px wide frame", opts.CropX, w)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return gocv.NewMat(), fmt.Errorf("invalid output size %dx%d", opts.Width, opts.Height)
	}

	rotated := gocv.NewMat()
	defer rotated.Close()

	if opts.Rotation != 0 {
		m := gocv.GetRotationMatrix2D(image.Point{X: w / 2, Y: h / 2}, opts.Rotation, 1.0)
		defer m.Close()
		gocv.WarpAffine(src, &rotated, m, image.Point{X: w, Y: h})
	} else {
		src.CopyTo(&rotated)
	}

	cropped := rotated.Region(image.Rect(opts.CropX, 0, w-opts.CropX, h))
	defer cropped.Close()

	out := gocv.NewMat()
	gocv.Resize(cropped, &out, image.Point{X: opts.Width, Y: opts.Height}, 0, 0, gocv.InterpolationLinear)

	return out, nil
}
