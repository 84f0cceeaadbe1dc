// Package session holds the per-user state of the signing UI.
//
// Types:
//   - Session: Tracks the uploaded document, staged signature, selected page,
//     last preview size, chosen placement and the signed output.
//   - SessionManager: Manages all active sessions.
//
// Expected outputs:
// - Session IDs are unique (UUID)
// - Uploaded bytes are kept in memory only and never mutated
// - Cleanup drops every buffer a session holds
//
// The pdf package stays stateless; handlers pass what they need from a
// Session into each call.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"go-signpdf/internal/pdf"
	"go-signpdf/internal/utils"
)

var (
	ErrNoDocument  = errors.New("no document uploaded")
	ErrNoSignature = errors.New("no signature uploaded")
	ErrNoPreview   = errors.New("no preview rendered for the selected page")
	ErrNoPlacement = errors.New("no signature position chosen")
	// ErrDocumentChanged reports that the document was replaced while a
	// request that read it was still running.
	ErrDocumentChanged = errors.New("document was replaced")
)

type Session struct {
	ID        string
	CreatedAt time.Time

	Document     []byte
	DocumentName string
	Info         *pdf.Info
	// Revision counts document uploads.
	Revision int

	SignatureRaw []byte
	Signature    image.Image

	Page        int
	PreviewSize pdf.Size
	Position    *pdf.Point
	StampSize   pdf.Size

	OutputFile string
	Output     []byte

	Mutex sync.Mutex
}

// View is the selected page of the current document.
type View struct {
	Document    []byte
	Revision    int
	Page        int
	PageSize    pdf.Size
	PreviewSize pdf.Size
}

// State is a copy of what a signing request needs.
type State struct {
	Document    []byte
	Info        *pdf.Info
	Signature   image.Image
	Page        int
	PageSize    pdf.Size
	PreviewSize pdf.Size
	Position    pdf.Point
	StampSize   pdf.Size
}

type SessionManager struct {
	Sessions map[string]*Session
	Mutex    sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) CreateSession() *Session {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()

	session := &Session{
		ID:        utils.GenerateUUID(),
		CreatedAt: time.Now(),
	}
	sm.Sessions[session.ID] = session
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.Mutex.RLock()
	defer sm.Mutex.RUnlock()
	session, exists := sm.Sessions[id]
	return session, exists
}

func (sm *SessionManager) DeleteSession(id string) {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	if session, ok := sm.Sessions[id]; ok {
		session.Cleanup()
		delete(sm.Sessions, id)
	}
}

// Reap removes sessions older than ttl and returns how many were dropped.
func (sm *SessionManager) Reap(ttl time.Duration) int {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	n := 0
	for id, session := range sm.Sessions {
		if time.Since(session.CreatedAt) > ttl {
			session.Cleanup()
			delete(sm.Sessions, id)
			n++
		}
	}
	return n
}

// StartReaper runs Reap every interval until ctx is done.
func (sm *SessionManager) StartReaper(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sm.Reap(ttl); n > 0 {
					log.Printf("Reaped %d expired sessions", n)
				}
			}
		}
	}()
}

// SetDocument replaces the session's document. Page selection, preview,
// placement and output all reset since they referred to the old document.
func (s *Session) SetDocument(name string, doc []byte, info *pdf.Info) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.DocumentName = name
	s.Document = doc
	s.Info = info
	s.Revision++
	s.Page = 1
	s.PreviewSize = pdf.Size{}
	s.Position = nil
	s.OutputFile = ""
	s.Output = nil
}

func (s *Session) SetSignature(raw []byte, img image.Image) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.SignatureRaw = raw
	s.Signature = img
}

// SelectPage makes page (1-based) the active page. The previous preview and
// placement are dropped.
func (s *Session) SelectPage(page int) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.Info == nil {
		return ErrNoDocument
	}
	if err := s.checkPage(page); err != nil {
		return err
	}
	if page != s.Page {
		s.Page = page
		s.PreviewSize = pdf.Size{}
		s.Position = nil
	}
	return nil
}

// CurrentPage returns the selected page of the current document.
func (s *Session) CurrentPage() (View, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.Document == nil || s.Info == nil {
		return View{}, ErrNoDocument
	}
	if err := s.checkPage(s.Page); err != nil {
		return View{}, err
	}
	return View{
		Document:    s.Document,
		Revision:    s.Revision,
		Page:        s.Page,
		PageSize:    s.Info.Pages[s.Page-1],
		PreviewSize: s.PreviewSize,
	}, nil
}

// checkPage reports whether page has a known size. Callers hold the mutex.
func (s *Session) checkPage(page int) error {
	if page < 1 || page > len(s.Info.Pages) {
		return fmt.Errorf("%w: page %d not in [1, %d]", pdf.ErrOutOfRange, page, len(s.Info.Pages))
	}
	return nil
}

// SetPreview records the pixel size of the preview rendered for page of the
// document at revision. Results for a replaced document are dropped.
func (s *Session) SetPreview(revision, page int, size pdf.Size) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.Info == nil {
		return ErrNoDocument
	}
	if revision != s.Revision {
		return ErrDocumentChanged
	}
	if err := s.checkPage(page); err != nil {
		return err
	}
	if page != s.Page {
		s.Page = page
		s.Position = nil
	}
	s.PreviewSize = size
	return nil
}

// SetPlacement records where the stamp goes, in preview pixels. The whole
// stamp box must lie inside the current preview.
func (s *Session) SetPlacement(at pdf.Point, stamp pdf.Size) error {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.PreviewSize.W <= 0 || s.PreviewSize.H <= 0 {
		return ErrNoPreview
	}
	if stamp.W <= 0 || stamp.H <= 0 {
		return fmt.Errorf("%w: stamp size %.0fx%.0f", pdf.ErrInvalidArgument, stamp.W, stamp.H)
	}
	if !pdf.InPreview(at, stamp, s.PreviewSize) {
		return fmt.Errorf("%w: stamp at (%.0f, %.0f) size %.0fx%.0f does not fit the %.0fx%.0f preview",
			pdf.ErrOutOfRange, at.X, at.Y, stamp.W, stamp.H, s.PreviewSize.W, s.PreviewSize.H)
	}
	s.Position = &at
	s.StampSize = stamp
	return nil
}

// Snapshot returns the state needed to sign, or an error naming the first
// missing precondition.
func (s *Session) Snapshot() (State, error) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	switch {
	case s.Document == nil || s.Info == nil:
		return State{}, ErrNoDocument
	case s.Signature == nil:
		return State{}, ErrNoSignature
	case s.PreviewSize.W <= 0 || s.PreviewSize.H <= 0:
		return State{}, ErrNoPreview
	case s.Position == nil:
		return State{}, ErrNoPlacement
	}
	if err := s.checkPage(s.Page); err != nil {
		return State{}, err
	}
	return State{
		Document:    s.Document,
		Info:        s.Info,
		Signature:   s.Signature,
		Page:        s.Page,
		PageSize:    s.Info.Pages[s.Page-1],
		PreviewSize: s.PreviewSize,
		Position:    *s.Position,
		StampSize:   s.StampSize,
	}, nil
}

// SetOutput stores the signed document under name, replacing any earlier one.
func (s *Session) SetOutput(name string, b []byte) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.OutputFile != "" {
		log.Printf("Replacing output file: %s", s.OutputFile)
	}
	s.OutputFile = name
	s.Output = b
}

// GetOutput returns the signed document if name matches it.
func (s *Session) GetOutput(name string) ([]byte, bool) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	if s.OutputFile == "" || s.OutputFile != name {
		return nil, false
	}
	return s.Output, true
}

func (s *Session) Cleanup() {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Document = nil
	s.Info = nil
	s.SignatureRaw = nil
	s.Signature = nil
	s.Position = nil
	s.OutputFile = ""
	s.Output = nil
}
