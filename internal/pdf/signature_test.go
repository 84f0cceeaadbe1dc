package pdf

import (
	"bytes"
	"errors"
	"image/jpeg"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDecodeSignature(t *testing.T) {
	t.Run("png with alpha", func(t *testing.T) {
		img, err := DecodeSignature(encodePNG(t, makeSignature(300, 100, true)))
		if err != nil {
			t.Fatalf("DecodeSignature failed: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 100 {
			t.Errorf("Expected 300x100, got %dx%d", b.Dx(), b.Dy())
		}
	})

	t.Run("jpeg", func(t *testing.T) {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, makeSignature(120, 40, false), nil); err != nil {
			t.Fatalf("Failed to encode JPEG: %v", err)
		}
		if _, err := DecodeSignature(buf.Bytes()); err != nil {
			t.Fatalf("DecodeSignature failed: %v", err)
		}
	})

	for name, b := range map[string][]byte{
		"empty":     nil,
		"garbage":   []byte("definitely not an image"),
		"truncated": encodePNG(t, makeSignature(50, 20, true))[:40],
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeSignature(b); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestFit(t *testing.T) {
	opt := cmpopts.EquateApprox(0, 1e-9)

	// 300x100 into 150x100: width bound, centred vertically.
	at, size := fit(300, 100, Point{X: 10, Y: 20}, Size{W: 150, H: 100})
	if diff := cmp.Diff(Size{W: 150, H: 50}, size, opt); diff != "" {
		t.Errorf("Unexpected size (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Point{X: 10, Y: 45}, at, opt); diff != "" {
		t.Errorf("Unexpected anchor (-want +got):\n%s", diff)
	}

	// 100x100 into 150x50: height bound, centred horizontally.
	at, size = fit(100, 100, Point{}, Size{W: 150, H: 50})
	if diff := cmp.Diff(Size{W: 50, H: 50}, size, opt); diff != "" {
		t.Errorf("Unexpected size (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Point{X: 50, Y: 0}, at, opt); diff != "" {
		t.Errorf("Unexpected anchor (-want +got):\n%s", diff)
	}
}
