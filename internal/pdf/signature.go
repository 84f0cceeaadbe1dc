package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF format
	_ "image/jpeg" // register JPEG format
	"image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // register BMP format
	_ "golang.org/x/image/tiff" // register TIFF format
	_ "golang.org/x/image/webp" // register WebP format
)

// DecodeSignature decodes raw signature image bytes. Any registered raster
// format is accepted; transparency is kept.
func DecodeSignature(b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty signature image", ErrInvalidInput)
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode signature image: %v", ErrInvalidInput, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: signature %s image has no pixels", ErrInvalidInput, format)
	}
	return img, nil
}

// encodeSignature re-encodes img as an 8-bit PNG. Opaque images come out as
// RGB, others as RGBA so the alpha channel survives into the overlay.
func encodeSignature(img image.Image) ([]byte, error) {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, fmt.Errorf("%w: failed to encode signature image: %v", ErrInvalidInput, err)
	}
	return buf.Bytes(), nil
}

// fit places a w×h raster inside box, keeping its aspect ratio and centring
// it. The returned rectangle is in the same space as box.
func fit(w, h int, at Point, box Size) (Point, Size) {
	scale := box.W / float64(w)
	if s := box.H / float64(h); s < scale {
		scale = s
	}
	drawn := Size{W: float64(w) * scale, H: float64(h) * scale}
	return Point{
		X: at.X + (box.W-drawn.W)/2,
		Y: at.Y + (box.H-drawn.H)/2,
	}, drawn
}
