package pdf

import (
	"fmt"
	"math"
)

// pointsPerInch is the PDF user space unit.
const pointsPerInch = 72.0

// Point is a position. In preview space the origin is top-left with Y
// growing downward; in PDF space the origin is bottom-left with Y growing
// upward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height, in pixels or points depending on the space.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

func (s Size) empty() bool {
	return s.W <= 0 || s.H <= 0
}

// ToPDFSpace converts the top-left corner of a stamp placed at pixel in a
// preview of size preview into the stamp's lower-left anchor in PDF points on
// a page of size page. stampPixelHeight is the stamp's height in preview
// pixels. The result is not clamped.
func ToPDFSpace(pixel Point, preview, page Size, stampPixelHeight float64) (Point, error) {
	if preview.empty() {
		return Point{}, fmt.Errorf("%w: preview size %.0fx%.0f", ErrInvalidArgument, preview.W, preview.H)
	}
	scaleX := page.W / preview.W
	scaleY := page.H / preview.H
	return Point{
		X: pixel.X * scaleX,
		Y: page.H - pixel.Y*scaleY - stampPixelHeight*scaleY,
	}, nil
}

// ScaleToPDF converts a size measured in preview pixels into points.
func ScaleToPDF(size, preview, page Size) (Size, error) {
	if preview.empty() {
		return Size{}, fmt.Errorf("%w: preview size %.0fx%.0f", ErrInvalidArgument, preview.W, preview.H)
	}
	return Size{
		W: size.W * page.W / preview.W,
		H: size.H * page.H / preview.H,
	}, nil
}

// ScaleToPreview converts a size in points into preview pixels.
func ScaleToPreview(size, page, preview Size) (Size, error) {
	if page.empty() {
		return Size{}, fmt.Errorf("%w: page size %.2fx%.2f", ErrInvalidArgument, page.W, page.H)
	}
	return Size{
		W: size.W * preview.W / page.W,
		H: size.H * preview.H / page.H,
	}, nil
}

// PreviewSize is the pixel size of a page of the given point size rendered
// at dpi.
func PreviewSize(page Size, dpi float64) Size {
	return Size{
		W: math.Round(page.W * dpi / pointsPerInch),
		H: math.Round(page.H * dpi / pointsPerInch),
	}
}

// InPreview reports whether a stamp of size stamp placed with its top-left
// corner at pixel lies entirely inside preview.
func InPreview(pixel Point, stamp, preview Size) bool {
	if pixel.X < 0 || pixel.Y < 0 {
		return false
	}
	return pixel.X+stamp.W <= preview.W && pixel.Y+stamp.H <= preview.H
}
