package pdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultPreviewDPI is the resolution previews are rendered at unless
// configured otherwise.
const DefaultPreviewDPI = 150.0

// Preview is one page rendered to a raster.
type Preview struct {
	Page  int
	DPI   float64
	Image *image.RGBA
}

// Size returns the preview's pixel dimensions.
func (p *Preview) Size() Size {
	b := p.Image.Bounds()
	return Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// Renderer renders PDF pages to rasters.
type Renderer interface {
	Render(doc []byte, page int, dpi float64) (*Preview, error)
}

// FitzRenderer renders pages with MuPDF.
type FitzRenderer struct{}

// Render implements Renderer.
func (FitzRenderer) Render(doc []byte, page int, dpi float64) (*Preview, error) {
	return RenderPreview(doc, page, dpi)
}

// RenderPreview renders page (1-based) of doc at dpi.
func RenderPreview(doc []byte, page int, dpi float64) (*Preview, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("%w: dpi %.2f", ErrInvalidArgument, dpi)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty PDF", ErrInvalidInput)
	}
	d, err := fitz.NewFromMemory(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrInvalidInput, err)
	}
	defer d.Close()

	if page < 1 || page > d.NumPage() {
		return nil, fmt.Errorf("%w: page %d not in [1, %d]", ErrOutOfRange, page, d.NumPage())
	}
	img, err := d.ImageDPI(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}
	return &Preview{Page: page, DPI: dpi, Image: img}, nil
}
