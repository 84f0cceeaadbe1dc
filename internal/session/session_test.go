package session

import (
	"errors"
	"image"
	"testing"
	"time"

	"go-signpdf/internal/pdf"

	"github.com/google/go-cmp/cmp"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	sm := NewSessionManager()
	s := sm.CreateSession()
	s.SetDocument("doc.pdf", []byte("%PDF-"), &pdf.Info{
		PageCount: 3,
		Pages:     []pdf.Size{{W: 595, H: 842}, {W: 595, H: 842}, {W: 842, H: 595}},
	})
	return s
}

func TestSessionManager(t *testing.T) {
	sm := NewSessionManager()
	a := sm.CreateSession()
	b := sm.CreateSession()
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("Expected distinct session IDs, got %q and %q", a.ID, b.ID)
	}
	if got, ok := sm.GetSession(a.ID); !ok || got != a {
		t.Fatal("Expected to find session a")
	}

	sm.DeleteSession(a.ID)
	if _, ok := sm.GetSession(a.ID); ok {
		t.Error("Expected session a to be deleted")
	}

	b.CreatedAt = time.Now().Add(-time.Hour)
	if n := sm.Reap(time.Minute); n != 1 {
		t.Errorf("Expected 1 reaped session, got %d", n)
	}
	if _, ok := sm.GetSession(b.ID); ok {
		t.Error("Expected session b to be reaped")
	}
}

func TestSelectPage(t *testing.T) {
	s := newTestSession(t)
	for _, p := range []int{1, 3} {
		if err := s.SelectPage(p); err != nil {
			t.Errorf("SelectPage(%d) failed: %v", p, err)
		}
	}
	for _, p := range []int{0, 4} {
		if err := s.SelectPage(p); !errors.Is(err, pdf.ErrOutOfRange) {
			t.Errorf("SelectPage(%d): expected ErrOutOfRange, got %v", p, err)
		}
	}

	var empty Session
	if err := empty.SelectPage(1); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Expected ErrNoDocument, got %v", err)
	}
}

func TestPlacementAndSnapshot(t *testing.T) {
	s := newTestSession(t)
	stamp := pdf.Size{W: 312, H: 104}

	if err := s.SetPlacement(pdf.Point{X: 10, Y: 10}, stamp); !errors.Is(err, ErrNoPreview) {
		t.Fatalf("Expected ErrNoPreview, got %v", err)
	}

	if err := s.SetPreview(s.Revision, 1, pdf.Size{W: 1240, H: 1754}); err != nil {
		t.Fatalf("SetPreview failed: %v", err)
	}
	if err := s.SetPlacement(pdf.Point{X: 1000, Y: 10}, stamp); !errors.Is(err, pdf.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if err := s.SetPlacement(pdf.Point{X: 400, Y: 100}, stamp); err != nil {
		t.Fatalf("SetPlacement failed: %v", err)
	}

	if _, err := s.Snapshot(); !errors.Is(err, ErrNoSignature) {
		t.Fatalf("Expected ErrNoSignature, got %v", err)
	}
	s.SetSignature([]byte{1}, image.NewNRGBA(image.Rect(0, 0, 3, 1)))

	got, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	want := struct {
		Page        int
		PageSize    pdf.Size
		PreviewSize pdf.Size
		Position    pdf.Point
		StampSize   pdf.Size
	}{1, pdf.Size{W: 595, H: 842}, pdf.Size{W: 1240, H: 1754}, pdf.Point{X: 400, Y: 100}, stamp}
	gotView := struct {
		Page        int
		PageSize    pdf.Size
		PreviewSize pdf.Size
		Position    pdf.Point
		StampSize   pdf.Size
	}{got.Page, got.PageSize, got.PreviewSize, got.Position, got.StampSize}
	if diff := cmp.Diff(want, gotView); diff != "" {
		t.Errorf("Unexpected snapshot (-want +got):\n%s", diff)
	}

	// Switching pages invalidates the preview and placement.
	if err := s.SelectPage(2); err != nil {
		t.Fatalf("SelectPage failed: %v", err)
	}
	if _, err := s.Snapshot(); !errors.Is(err, ErrNoPreview) {
		t.Errorf("Expected ErrNoPreview after page change, got %v", err)
	}
}

func TestPreviewOfReplacedDocument(t *testing.T) {
	s := newTestSession(t)
	if err := s.SelectPage(3); err != nil {
		t.Fatalf("SelectPage failed: %v", err)
	}
	view, err := s.CurrentPage()
	if err != nil {
		t.Fatalf("CurrentPage failed: %v", err)
	}

	// A new, shorter document arrives while page 3 of the old one renders.
	s.SetDocument("short.pdf", []byte("%PDF-"), &pdf.Info{
		PageCount: 1,
		Pages:     []pdf.Size{{W: 595, H: 842}},
	})
	if err := s.SetPreview(view.Revision, view.Page, pdf.Size{W: 1754, H: 1240}); !errors.Is(err, ErrDocumentChanged) {
		t.Fatalf("Expected ErrDocumentChanged, got %v", err)
	}
	if err := s.SetPlacement(pdf.Point{X: 10, Y: 10}, pdf.Size{W: 100, H: 30}); !errors.Is(err, ErrNoPreview) {
		t.Errorf("Expected ErrNoPreview, got %v", err)
	}

	current, err := s.CurrentPage()
	if err != nil {
		t.Fatalf("CurrentPage failed: %v", err)
	}
	if current.Page != 1 || current.Revision == view.Revision {
		t.Errorf("Unexpected view after replacement: %+v", current)
	}
	if err := s.SetPreview(current.Revision, 3, pdf.Size{W: 1240, H: 1754}); !errors.Is(err, pdf.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for a page the document lacks, got %v", err)
	}
}

func TestSnapshotRejectsUnknownPage(t *testing.T) {
	s := newTestSession(t)
	s.SetSignature([]byte{1}, image.NewNRGBA(image.Rect(0, 0, 3, 1)))
	if err := s.SetPreview(s.Revision, 1, pdf.Size{W: 1240, H: 1754}); err != nil {
		t.Fatalf("SetPreview failed: %v", err)
	}
	if err := s.SetPlacement(pdf.Point{X: 10, Y: 10}, pdf.Size{W: 100, H: 30}); err != nil {
		t.Fatalf("SetPlacement failed: %v", err)
	}

	s.Mutex.Lock()
	s.Info.Pages = s.Info.Pages[:0]
	s.Mutex.Unlock()

	if _, err := s.Snapshot(); !errors.Is(err, pdf.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if _, err := s.CurrentPage(); !errors.Is(err, pdf.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange from CurrentPage, got %v", err)
	}
}

func TestOutput(t *testing.T) {
	s := newTestSession(t)
	if _, ok := s.GetOutput(""); ok {
		t.Error("Expected no output before signing")
	}
	s.SetOutput("signed-1.pdf", []byte("one"))
	s.SetOutput("signed-2.pdf", []byte("two"))
	if _, ok := s.GetOutput("signed-1.pdf"); ok {
		t.Error("Expected replaced output to be gone")
	}
	b, ok := s.GetOutput("signed-2.pdf")
	if !ok || string(b) != "two" {
		t.Errorf("Expected latest output, got %q, %v", b, ok)
	}

	s.Cleanup()
	if _, ok := s.GetOutput("signed-2.pdf"); ok {
		t.Error("Expected output to be dropped by Cleanup")
	}
}
