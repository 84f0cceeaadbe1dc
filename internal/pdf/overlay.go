package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Date line placement relative to the stamp's lower-left anchor. The line
// starts DateOffsetXRatio of the stamp width to the right of the anchor and
// its baseline sits DateOffsetY points below the stamp's bottom edge.
const (
	DateOffsetXRatio = 0.3
	DateOffsetY      = 10.0
)

const (
	dateFont     = "Helvetica"
	dateFontSize = 10.0
	overlayImage = "signature"
)

// buildOverlay renders a single transparent page of size page carrying the
// signature and, when s.DateText is set, the date line. Positions in s are
// PDF points measured from the bottom-left corner.
func buildOverlay(page Size, s Stamp) ([]byte, error) {
	sig, err := encodeSignature(s.Signature)
	if err != nil {
		return nil, err
	}

	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.W, Ht: page.H},
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	f.RegisterImageOptionsReader(overlayImage, opts, bytes.NewReader(sig))

	at, size := s.At, s.Size
	if !s.Stretch {
		b := s.Signature.Bounds()
		at, size = fit(b.Dx(), b.Dy(), s.At, s.Size)
	}
	// fpdf measures y from the top edge to the image's top edge.
	f.ImageOptions(overlayImage, at.X, page.H-at.Y-size.H, size.W, size.H, false, opts, 0, "")

	if s.DateText != "" {
		text, err := encodeWinAnsi(s.DateText)
		if err != nil {
			return nil, err
		}
		f.SetFont(dateFont, "", dateFontSize)
		f.SetTextColor(0, 0, 0)
		x := s.At.X + DateOffsetXRatio*s.Size.W
		baseline := s.At.Y - DateOffsetY
		f.Text(x, page.H-baseline, text)
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build overlay: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeWinAnsi maps s onto the core fonts' WinAnsi encoding, replacing runes
// it cannot represent.
func encodeWinAnsi(s string) (string, error) {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.String(s)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode date text: %v", ErrInvalidInput, err)
	}
	return out, nil
}
