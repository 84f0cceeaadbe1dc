// Package handlers provides HTTP handlers for the PDF signing API.
//
// This package contains the HTTP endpoints for session management, document
// and signature upload, page selection, preview rendering, signature
// placement, signing and download.
//
// Example usage:
//
//	h := handlers.NewAPIHandler(sessionManager, cfg, pdf.FitzRenderer{})
//	r := chi.NewRouter()
//	r.Post("/api/sessions/", h.CreateSession)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"go-signpdf/internal/config"
	"go-signpdf/internal/pdf"
	"go-signpdf/internal/session"
	"go-signpdf/internal/utils"

	"github.com/go-chi/chi/v5"
)

type APIHandler struct {
	SessionManager *session.SessionManager
	Config         *config.Config
	Renderer       pdf.Renderer
	// Now supplies the date for the date line when the client sends none.
	Now func() time.Time
}

func NewAPIHandler(sm *session.SessionManager, cfg *config.Config, renderer pdf.Renderer) *APIHandler {
	return &APIHandler{SessionManager: sm, Config: cfg, Renderer: renderer, Now: time.Now}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// writeError maps err onto a status code. Precondition failures carry their
// message to the client; anything else is logged and reported generically.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, pdf.ErrInvalidInput),
		errors.Is(err, pdf.ErrInvalidArgument),
		errors.Is(err, pdf.ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pdf.ErrInvalidDocument):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, session.ErrNoDocument),
		errors.Is(err, session.ErrNoSignature),
		errors.Is(err, session.ErrNoPreview),
		errors.Is(err, session.ErrNoPlacement),
		errors.Is(err, session.ErrDocumentChanged):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("%s: %v", fallback, err)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func (h *APIHandler) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	session, exists := h.SessionManager.GetSession(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// CreateSession godoc
// @Summary      Create a new session
// @Description  Creates a new PDF signing session and returns a session ID
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]string  "{ sessionId: string }"
// @Router       /api/sessions/ [post]
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.SessionManager.CreateSession()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"sessionId": "%s"}`, session.ID)
}

// UploadDocument godoc
// @Summary      Upload the PDF to sign
// @Description  Uploads a PDF into the session, replacing any earlier one, and reports its pages
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        pdf        formData  file    true  "PDF file"
// @Success      200  {object}  map[string]interface{}  "{ filename: string, size: int, pageCount: int, pages: [{width, height}] }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Failure      422  {string}  string  "Unusable page geometry"
// @Router       /api/sessions/{sessionID}/document [post]
func (h *APIHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	maxUploadSize := h.Config.MaxPDFMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("pdf")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(handler.Filename)) != ".pdf" {
		http.Error(w, "Only PDF files are allowed", http.StatusBadRequest)
		return
	}

	doc, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-")) {
		http.Error(w, "Uploaded file is not a valid PDF", http.StatusBadRequest)
		return
	}

	info, err := pdf.Inspect(doc)
	if err != nil {
		writeError(w, err, "Failed to read PDF")
		return
	}

	filename := utils.SanitizeFilename(handler.Filename)
	sess.SetDocument(filename, doc, info)
	writeJSON(w, map[string]any{
		"filename":  filename,
		"size":      len(doc),
		"pageCount": info.PageCount,
		"pages":     info.Pages,
	})
}

// UploadSignature godoc
// @Summary      Upload a signature image
// @Description  Uploads a signature image (PNG/JPEG) to the session
// @Tags         signature
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        signature  formData  file    true  "Signature image file (PNG/JPEG)"
// @Success      200  {object}  map[string]interface{}  "{ filename: string, size: int, width: int, height: int }"
// @Failure      400  {string}  string  "Bad request - invalid image format"
// @Failure      404  {string}  string  "Session not found"
// @Router       /api/sessions/{sessionID}/signature [post]
func (h *APIHandler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	maxUploadSize := h.Config.MaxSignatureMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("signature")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Check file extension
	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		http.Error(w, "Only PNG and JPEG images are allowed", http.StatusBadRequest)
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	contentType := http.DetectContentType(raw)

	// Check that the content type is specifically PNG or JPEG/JPG
	validExtensions := map[string][]string{
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
	}
	extensions, allowed := validExtensions[contentType]
	if !allowed {
		http.Error(w, "Invalid image format. Only PNG and JPEG images are allowed", http.StatusBadRequest)
		return
	}
	if !slices.Contains(extensions, ext) {
		http.Error(w, "File extension doesn't match content type", http.StatusBadRequest)
		return
	}

	img, err := pdf.DecodeSignature(raw)
	if err != nil {
		writeError(w, err, "Failed to decode signature")
		return
	}

	sess.SetSignature(raw, img)
	b := img.Bounds()
	writeJSON(w, map[string]any{
		"filename": utils.SanitizeFilename(handler.Filename),
		"size":     len(raw),
		"width":    b.Dx(),
		"height":   b.Dy(),
	})
}

// SelectPage godoc
// @Summary      Select the page to sign
// @Description  Makes a page (1-based) the active page; its preview must be fetched again
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        request    body      object  true  "{ page: int }"
// @Success      200  {object}  map[string]int  "{ page: int }"
// @Failure      400  {string}  string  "Page out of range"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "No document uploaded"
// @Router       /api/sessions/{sessionID}/page [put]
func (h *APIHandler) SelectPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if err := sess.SelectPage(req.Page); err != nil {
		writeError(w, err, "Failed to select page")
		return
	}
	writeJSON(w, map[string]int{"page": req.Page})
}

// signOptions are the stamp options shared by signing and stamped previews.
type signOptions struct {
	IncludeDate bool   `json:"includeDate"`
	Date        string `json:"date"`
	Stretch     bool   `json:"stretch"`
}

// buildStamp maps the session's placement into PDF space.
func (h *APIHandler) buildStamp(state session.State, opts signOptions) (pdf.Stamp, error) {
	at, err := pdf.ToPDFSpace(state.Position, state.PreviewSize, state.PageSize, state.StampSize.H)
	if err != nil {
		return pdf.Stamp{}, err
	}
	size, err := pdf.ScaleToPDF(state.StampSize, state.PreviewSize, state.PageSize)
	if err != nil {
		return pdf.Stamp{}, err
	}

	dateText := ""
	if opts.IncludeDate {
		dateText = opts.Date
		if dateText == "" {
			dateText = h.Now().Format(h.Config.Stamp.DateFormat)
		}
	}

	return pdf.Stamp{
		Signature: state.Signature,
		Page:      state.Page,
		At:        at,
		Size:      size,
		DateText:  dateText,
		Stretch:   opts.Stretch,
	}, nil
}

func queryBool(q url.Values, key string) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", pdf.ErrInvalidArgument, key, v)
	}
	return b, nil
}

// Preview godoc
// @Summary      Render a page preview
// @Description  Renders the selected page (or ?page=) as PNG at the configured DPI. The pixel size and the default stamp size in pixels are reported in headers. With stamp=true the staged signature is drawn at the chosen position, exactly as signing would place it.
// @Tags         signature
// @Produce      image/png
// @Param        sessionID    path      string  true   "Session ID"
// @Param        page         query     int     false  "Page (1-based), defaults to the selected page"
// @Param        stamp        query     bool    false  "Draw the signature at the chosen position"
// @Param        includeDate  query     bool    false  "With stamp, also draw the date line"
// @Param        date         query     string  false  "With stamp, the date text to draw"
// @Param        stretch      query     bool    false  "With stamp, fill the stamp box exactly"
// @Success      200  {file}  file  "PNG preview"
// @Failure      400  {string}  string  "Page out of range"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "No document uploaded, or nothing to stamp yet"
// @Router       /api/sessions/{sessionID}/preview [get]
func (h *APIHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	if p := q.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			http.Error(w, "Invalid page", http.StatusBadRequest)
			return
		}
		if err := sess.SelectPage(page); err != nil {
			writeError(w, err, "Failed to select page")
			return
		}
	}
	withStamp, err := queryBool(q, "stamp")
	if err != nil {
		writeError(w, err, "")
		return
	}

	view, err := sess.CurrentPage()
	if err != nil {
		writeError(w, err, "Failed to read page")
		return
	}
	doc, page, pageSize := view.Document, view.Page, view.PageSize

	if withStamp {
		var opts signOptions
		if opts.IncludeDate, err = queryBool(q, "includeDate"); err != nil {
			writeError(w, err, "")
			return
		}
		if opts.Stretch, err = queryBool(q, "stretch"); err != nil {
			writeError(w, err, "")
			return
		}
		opts.Date = q.Get("date")

		state, err := sess.Snapshot()
		if err != nil {
			writeError(w, err, "Failed to stamp preview")
			return
		}
		stamp, err := h.buildStamp(state, opts)
		if err != nil {
			writeError(w, err, "Failed to map position")
			return
		}
		doc, err = pdf.StampPDF(state.Document, stamp)
		if err != nil {
			writeError(w, err, "Failed to stamp preview")
			return
		}
		page, pageSize = state.Page, state.PageSize
	}

	preview, err := h.Renderer.Render(doc, page, h.Config.PreviewDPI)
	if err != nil {
		writeError(w, err, "Failed to render preview")
		return
	}
	size := preview.Size()
	if !withStamp {
		if err := sess.SetPreview(view.Revision, page, size); err != nil {
			writeError(w, err, "Failed to record preview")
			return
		}
	}

	stamp, err := pdf.ScaleToPreview(pdf.Size{W: h.Config.Stamp.Width, H: h.Config.Stamp.Height}, pageSize, size)
	if err != nil {
		writeError(w, err, "Failed to size stamp")
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, preview.Image); err != nil {
		writeError(w, err, "Failed to encode preview")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Preview-Page", strconv.Itoa(page))
	w.Header().Set("X-Preview-Width", strconv.Itoa(int(size.W)))
	w.Header().Set("X-Preview-Height", strconv.Itoa(int(size.H)))
	w.Header().Set("X-Stamp-Width", strconv.Itoa(int(stamp.W)))
	w.Header().Set("X-Stamp-Height", strconv.Itoa(int(stamp.H)))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing preview: %v", err)
	}
}

// SetPosition godoc
// @Summary      Place the signature
// @Description  Records the stamp's top-left corner and size in preview pixels. The stamp must fit inside the last preview; width and height default to the configured stamp size.
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Param        request    body      object  true  "{ x: number, y: number, width: number, height: number }"
// @Success      200  {object}  map[string]number  "{ x, y, width, height }"
// @Failure      400  {string}  string  "Position outside the preview"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "No preview rendered"
// @Router       /api/sessions/{sessionID}/position [put]
func (h *APIHandler) SetPosition(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	var req struct {
		X      *float64 `json:"x"`
		Y      *float64 `json:"y"`
		Width  float64  `json:"width"`
		Height float64  `json:"height"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.X == nil || req.Y == nil {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	stamp := pdf.Size{W: req.Width, H: req.Height}
	if stamp.W == 0 && stamp.H == 0 {
		view, err := sess.CurrentPage()
		if err != nil {
			writeError(w, err, "Failed to read page")
			return
		}
		stamp, err = pdf.ScaleToPreview(pdf.Size{W: h.Config.Stamp.Width, H: h.Config.Stamp.Height}, view.PageSize, view.PreviewSize)
		if err != nil {
			writeError(w, err, "Failed to size stamp")
			return
		}
	}

	at := pdf.Point{X: *req.X, Y: *req.Y}
	if err := sess.SetPlacement(at, stamp); err != nil {
		writeError(w, err, "Failed to place signature")
		return
	}
	writeJSON(w, map[string]float64{"x": at.X, "y": at.Y, "width": stamp.W, "height": stamp.H})
}

// SignPDF godoc
// @Summary      Sign the PDF
// @Description  Stamps the staged signature, and optionally a date line, onto the selected page at the chosen position
// @Tags         signature
// @Accept       json
// @Produce      json
// @Param        sessionID  path    string  true   "Session ID"
// @Param        request    body    object  false  "{ includeDate: bool, date: string, stretch: bool }"
// @Success      200  {object}  map[string]interface{}  "{ downloadUrl: string, page: int, x: number, y: number }"
// @Failure      400  {string}  string  "Bad request"
// @Failure      404  {string}  string  "Session not found"
// @Failure      409  {string}  string  "Missing document, signature, preview or position"
// @Failure      422  {string}  string  "Unusable page geometry"
// @Router       /api/sessions/{sessionID}/sign [post]
func (h *APIHandler) SignPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	var req signOptions
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			http.Error(w, "Invalid JSON format", http.StatusBadRequest)
			return
		}
	}

	state, err := sess.Snapshot()
	if err != nil {
		writeError(w, err, "Failed to sign PDF")
		return
	}

	stamp, err := h.buildStamp(state, req)
	if err != nil {
		writeError(w, err, "Failed to map position")
		return
	}

	signed, err := pdf.StampPDF(state.Document, stamp)
	if err != nil {
		writeError(w, err, "Failed to apply signature")
		return
	}

	signedFilename := fmt.Sprintf("signed-%s.pdf", utils.GenerateUUID())
	sess.SetOutput(signedFilename, signed)

	downloadURL := fmt.Sprintf("/api/sessions/%s/files/%s", sess.ID, signedFilename)
	writeJSON(w, map[string]any{
		"downloadUrl": downloadURL,
		"page":        state.Page,
		"x":           stamp.At.X,
		"y":           stamp.At.Y,
	})
}

// DownloadFile godoc
// @Summary      Download the signed PDF
// @Description  Downloads the signed PDF produced by the last sign request
// @Tags         files
// @Produce      application/pdf
// @Param        sessionID  path      string  true  "Session ID"
// @Param        filename   path      string  true  "Signed PDF filename"
// @Success      200  {file}  file  "PDF file download"
// @Failure      404  {string}  string  "Session or file not found"
// @Router       /api/sessions/{sessionID}/files/{filename} [get]
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	filename := chi.URLParam(r, "filename")
	signed, exists := sess.GetOutput(filename)
	if !exists {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	sess.Mutex.Lock()
	name := sess.DocumentName
	sess.Mutex.Unlock()
	if name == "" {
		name = "document.pdf"
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", utils.SignedFilename(name)))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(signed)))
	if _, err := w.Write(signed); err != nil {
		log.Printf("Error writing download: %v", err)
	}
}
