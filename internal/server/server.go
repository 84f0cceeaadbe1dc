// Package server provides the HTTP server setup for go-signpdf.
//
// NewServer creates and configures the HTTP server, session manager and
// preview renderer.
//
// Expected outputs:
// - Server listens on the configured port (default 8080)
// - Expired sessions are reaped periodically until ctx is cancelled
//
// Usage:
//
//	server := server.NewServer(ctx, cfg)
//	server.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"context"
	"net/http"
	"time"

	"go-signpdf/internal/config"
	"go-signpdf/internal/pdf"
	"go-signpdf/internal/session"
)

type Server struct {
	Config         *config.Config
	SessionManager *session.SessionManager
	Renderer       pdf.Renderer
}

func NewServer(ctx context.Context, cfg *config.Config) *http.Server {
	srv := &Server{
		Config:         cfg,
		SessionManager: session.NewSessionManager(),
		Renderer:       pdf.FitzRenderer{},
	}

	srv.SessionManager.StartReaper(ctx, cfg.ReapInterval, cfg.SessionTTL)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
