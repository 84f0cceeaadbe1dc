package pdf

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"

	pdfreader "github.com/digitorus/pdf"
	"github.com/mattetti/filebuffer"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// overlayDesc lays the overlay page over the target page one to one.
const overlayDesc = "scalefactor:1 abs, position:bl, offset:0 0, rotation:0, opacity:1"

// Stamp is a request to place a signature on one page.
type Stamp struct {
	// Signature is the raster to draw. Alpha is preserved.
	Signature image.Image
	// Page is the 1-based target page.
	Page int
	// At is the lower-left corner of the stamp box in PDF points.
	At Point
	// Size is the stamp box in points.
	Size Size
	// DateText is drawn below the stamp when not empty.
	DateText string
	// Stretch fills the box exactly instead of letterboxing the image.
	Stretch bool
}

// StampPDF returns a copy of doc in which page s.Page carries the signature
// and optional date line. Every other page is passed through unchanged and
// doc itself is never modified. Calling it on its own output stacks a second
// stamp.
func StampPDF(doc []byte, s Stamp) ([]byte, error) {
	if s.Signature == nil || s.Signature.Bounds().Empty() {
		return nil, fmt.Errorf("%w: missing signature image", ErrInvalidInput)
	}
	if s.Size.empty() {
		return nil, fmt.Errorf("%w: stamp size %.2fx%.2f", ErrInvalidArgument, s.Size.W, s.Size.H)
	}

	ctx, err := readContext(doc)
	if err != nil {
		return nil, err
	}
	pageCount := ctx.PageCount
	page, rotate, err := pageGeometry(ctx, s.Page)
	if err != nil {
		return nil, err
	}
	// Previews of rotated pages are rotated too, so placements picked on them
	// do not map onto the unrotated media box.
	if rotate%360 != 0 {
		return nil, fmt.Errorf("%w: page %d is rotated by %d degrees", ErrInvalidDocument, s.Page, rotate)
	}

	overlay, err := buildOverlay(page, s)
	if err != nil {
		return nil, err
	}

	out, err := mergeOverlay(doc, overlay, s.Page)
	if err != nil {
		return nil, err
	}

	if err := verifyPageCount(out, pageCount); err != nil {
		return nil, err
	}
	return out, nil
}

// mergeOverlay stamps the first page of overlay on top of page p of doc.
// pdfcpu reads PDF stamps from a file, so the overlay lives in a scratch file
// for the duration of the call.
func mergeOverlay(doc, overlay []byte, p int) ([]byte, error) {
	tmp, err := os.CreateTemp("", "overlay-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay file: %w", err)
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove overlay file %s: %v", tmp.Name(), err)
		}
	}()

	if _, err := tmp.Write(overlay); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write overlay file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close overlay file: %w", err)
	}

	wm, err := pdfapi.PDFWatermark(tmp.Name()+":1", overlayDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overlay stamp: %w", err)
	}

	out := filebuffer.New([]byte{})
	pages := []string{strconv.Itoa(p)}
	if err := pdfapi.AddWatermarks(filebuffer.New(doc), out, pages, wm, newConfiguration()); err != nil {
		return nil, fmt.Errorf("%w: failed to apply signature: %v", ErrInvalidDocument, err)
	}
	return out.Buff.Bytes(), nil
}

// verifyPageCount re-reads out with an independent parser.
func verifyPageCount(out []byte, want int) error {
	r, err := pdfreader.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		return fmt.Errorf("%w: stamped output is unreadable: %v", ErrInvalidDocument, err)
	}
	if got := r.NumPage(); got != want {
		return fmt.Errorf("%w: stamped output has %d pages, want %d", ErrInvalidDocument, got, want)
	}
	return nil
}
