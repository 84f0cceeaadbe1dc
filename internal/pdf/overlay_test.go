package pdf

import (
	"bytes"
	"testing"
)

func TestBuildOverlay(t *testing.T) {
	base := Stamp{
		Signature: makeSignature(300, 100, true),
		Page:      1,
		At:        Point{X: 400, Y: 100},
		Size:      Size{W: 150, H: 50},
	}

	t.Run("page matches target", func(t *testing.T) {
		overlay, err := buildOverlay(a4, base)
		if err != nil {
			t.Fatalf("buildOverlay failed: %v", err)
		}
		if !bytes.Contains(overlay, []byte("/MediaBox [0 0 595.00 842.00]")) {
			t.Error("Expected overlay media box to match the A4 page")
		}
		info, err := Inspect(overlay)
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if info.PageCount != 1 {
			t.Errorf("Expected a single overlay page, got %d", info.PageCount)
		}
	})

	t.Run("no date adds no text", func(t *testing.T) {
		overlay, err := buildOverlay(a4, base)
		if err != nil {
			t.Fatalf("buildOverlay failed: %v", err)
		}
		if bytes.Contains(overlay, []byte("/BaseFont")) {
			t.Error("Expected no font without a date line")
		}
	})

	t.Run("date adds core font text", func(t *testing.T) {
		s := base
		s.DateText = "19 10 2026"
		overlay, err := buildOverlay(a4, s)
		if err != nil {
			t.Fatalf("buildOverlay failed: %v", err)
		}
		if !bytes.Contains(overlay, []byte("/BaseFont /Helvetica")) {
			t.Error("Expected Helvetica font resource for the date line")
		}
	})

	t.Run("alpha kept as soft mask", func(t *testing.T) {
		overlay, err := buildOverlay(a4, base)
		if err != nil {
			t.Fatalf("buildOverlay failed: %v", err)
		}
		if !bytes.Contains(overlay, []byte("/SMask")) {
			t.Error("Expected a soft mask for a transparent signature")
		}
	})

	t.Run("opaque image has no soft mask", func(t *testing.T) {
		s := base
		s.Signature = makeSignature(300, 100, false)
		overlay, err := buildOverlay(a4, s)
		if err != nil {
			t.Fatalf("buildOverlay failed: %v", err)
		}
		if bytes.Contains(overlay, []byte("/SMask")) {
			t.Error("Expected no soft mask for an opaque signature")
		}
	})
}

func TestEncodeWinAnsi(t *testing.T) {
	got, err := encodeWinAnsi("19 März 2026 ✓")
	if err != nil {
		t.Fatalf("encodeWinAnsi failed: %v", err)
	}
	want := "19 M\xe4rz 2026 \x1a"
	if got != want {
		t.Errorf("encodeWinAnsi = %q, want %q", got, want)
	}
}
