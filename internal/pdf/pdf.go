// Package pdf provides the PDF side of signature stamping.
//
// Functions:
//   - ToPDFSpace: Converts a preview pixel position into PDF points.
//     Inputs: pixel point, preview pixel size, page size in points, stamp pixel height.
//     Output: lower-left anchor in PDF points, error if the preview is empty.
//   - StampPDF: Stamps a signature image and optional date line onto one page.
//     Inputs: PDF bytes, Stamp request.
//     Output: new PDF bytes, error if validation or compositing fails.
//   - RenderPreview: Renders one page to a raster image at a given DPI.
//   - Inspect: Reports page count and page sizes of a PDF.
//
// These functions are stateless and used by the API handlers and the addsig command.
package pdf

import (
	"fmt"

	"github.com/mattetti/filebuffer"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info describes an uploaded document.
type Info struct {
	PageCount int    `json:"pageCount"`
	Pages     []Size `json:"pages"`
}

func newConfiguration() *model.Configuration {
	config := model.NewDefaultConfiguration()
	config.ValidationMode = model.ValidationRelaxed
	return config
}

func readContext(doc []byte) (*model.Context, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty PDF", ErrInvalidInput)
	}
	ctx, err := pdfapi.ReadContext(filebuffer.New(doc), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PDF: %v", ErrInvalidInput, err)
	}
	// ReadContext only parses; the page tree is counted on demand.
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: failed to count pages: %v", ErrInvalidInput, err)
	}
	return ctx, nil
}

// mediaBox returns the inherited media box size of page p (1-based).
func mediaBox(ctx *model.Context, p int) (Size, error) {
	size, _, err := pageGeometry(ctx, p)
	return size, err
}

// pageGeometry returns the media box size of page p and its /Rotate value
// in degrees.
func pageGeometry(ctx *model.Context, p int) (Size, int, error) {
	if p < 1 || p > ctx.PageCount {
		return Size{}, 0, fmt.Errorf("%w: page %d not in [1, %d]", ErrOutOfRange, p, ctx.PageCount)
	}
	pageDict, _, inhPAttrs, err := ctx.PageDict(p, true)
	if err != nil {
		return Size{}, 0, fmt.Errorf("%w: failed to read page %d: %v", ErrInvalidDocument, p, err)
	}
	if inhPAttrs == nil || inhPAttrs.MediaBox == nil {
		return Size{}, 0, fmt.Errorf("%w: page %d has no media box", ErrInvalidDocument, p)
	}
	mb := inhPAttrs.MediaBox
	size := Size{W: mb.Width(), H: mb.Height()}
	if size.W <= 0 || size.H <= 0 {
		return Size{}, 0, fmt.Errorf("%w: page %d has a degenerate media box %.2fx%.2f", ErrInvalidDocument, p, size.W, size.H)
	}
	rotate := inhPAttrs.Rotate
	if r := pageDict.IntEntry("Rotate"); r != nil {
		rotate = *r
	}
	return size, rotate, nil
}

// Inspect reads doc and reports its page count and media box sizes.
func Inspect(doc []byte) (*Info, error) {
	ctx, err := readContext(doc)
	if err != nil {
		return nil, err
	}
	info := &Info{PageCount: ctx.PageCount, Pages: make([]Size, 0, ctx.PageCount)}
	for p := 1; p <= ctx.PageCount; p++ {
		size, err := mediaBox(ctx, p)
		if err != nil {
			return nil, err
		}
		info.Pages = append(info.Pages, size)
	}
	return info, nil
}

// PageSize returns the media box size in points of page p (1-based).
func PageSize(doc []byte, p int) (Size, error) {
	ctx, err := readContext(doc)
	if err != nil {
		return Size{}, err
	}
	return mediaBox(ctx, p)
}
