// Package server sets up the HTTP server and registers API routes for go-signpdf.
//
// RegisterRoutes returns an http.Handler with all API endpoints for sessions,
// previews and signing.
//
// Expected outputs:
// - All API endpoints are available under /api/sessions
// - CORS and logging middleware are enabled
// - Swagger UI is served to localhost only
package server

import (
	"net"
	"net/http"

	_ "go-signpdf/docs"
	"go-signpdf/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Preview-Page", "X-Preview-Width", "X-Preview-Height",
			"X-Stamp-Width", "X-Stamp-Height",
		},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)
	h := handlers.NewAPIHandler(s.SessionManager, s.Config, s.Renderer)
	r.Route("/api/sessions", func(api chi.Router) {
		api.Post("/", h.CreateSession)
		api.Post("/{sessionID}/document", h.UploadDocument)
		api.Post("/{sessionID}/signature", h.UploadSignature)
		api.Put("/{sessionID}/page", h.SelectPage)
		api.Get("/{sessionID}/preview", h.Preview)
		api.Put("/{sessionID}/position", h.SetPosition)
		api.Post("/{sessionID}/sign", h.SignPDF)
		api.Get("/{sessionID}/files/{filename}", h.DownloadFile)
	})

	return r
}
