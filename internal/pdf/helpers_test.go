package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	pdfreader "github.com/digitorus/pdf"
	"github.com/go-pdf/fpdf"
)

// a4 is the A4 media box in points, rounded the way most producers write it.
var a4 = Size{W: 595, H: 842}

// makePDF returns a document with n pages of the given size, each labelled
// with its page number.
func makePDF(t *testing.T, n int, size Size) []byte {
	t.Helper()
	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.W, Ht: size.H},
	})
	f.SetFont("Helvetica", "", 24)
	for i := 1; i <= n; i++ {
		f.AddPage()
		f.Text(72, 144, fmt.Sprintf("Page %d", i))
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		t.Fatalf("Failed to build test PDF: %v", err)
	}
	return buf.Bytes()
}

// makeSignature returns a w×h raster with a dark diagonal stroke. When
// transparent is set the background is fully transparent, otherwise white.
func makeSignature(w, h int, transparent bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	bg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if transparent {
		bg = color.NRGBA{}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}
	ink := color.NRGBA{R: 10, G: 20, B: 120, A: 255}
	for x := 0; x < w; x++ {
		y := x * h / w
		for dy := -1; dy <= 1; dy++ {
			if yy := y + dy; yy >= 0 && yy < h {
				img.SetNRGBA(x, yy, ink)
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// pageContents returns the decoded content streams of every page of doc.
func pageContents(t *testing.T, doc []byte) [][]byte {
	t.Helper()
	r, err := pdfreader.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	contents := make([][]byte, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		v := r.Page(i).V.Key("Contents")
		var buf bytes.Buffer
		streams := []pdfreader.Value{v}
		if v.Kind() == pdfreader.Array {
			streams = streams[:0]
			for j := 0; j < v.Len(); j++ {
				streams = append(streams, v.Index(j))
			}
		}
		for _, s := range streams {
			rc := s.Reader()
			if _, err := io.Copy(&buf, rc); err != nil {
				t.Fatalf("Failed to read page %d contents: %v", i, err)
			}
			rc.Close()
			buf.WriteByte('\n')
		}
		contents = append(contents, buf.Bytes())
	}
	return contents
}
