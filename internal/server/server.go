// Package server exposes the webhook HTTP surface: a static landing page,
// the GitHub payload receiver and a health endpoint.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pullcheck/pullcheck-bot/internal/dispatch"
	"github.com/pullcheck/pullcheck-bot/internal/integrations/github"
)

//go:embed static/*
var staticFiles embed.FS

// maxPayloadBytes caps how much of a webhook body is read.
const maxPayloadBytes = 1 << 20

// Server serves the landing page and the webhook receiver.
type Server struct {
	dispatcher *dispatch.Dispatcher
	addr       string
}

// New creates a server delegating webhook payloads to the dispatcher.
func New(dispatcher *dispatch.Dispatcher, addr string) *Server {
	return &Server{
		dispatcher: dispatcher,
		addr:       addr,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	staticFS, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/github/payload", s.handlePayload)
	mux.HandleFunc("/api/health", s.handleHealth)

	return mux
}

// ListenAndServe runs the HTTP listener with bounded read/write timeouts.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log.Printf("[server] listening on %s", s.addr)
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("[server] failed to encode health response: %v", err)
	}
}

// handlePayload receives GitHub webhook deliveries. Missing or malformed
// payloads are a client error; dispatch failures map to 500 and remote
// platform failures to 502.
func (s *Server) handlePayload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	delivery := r.Header.Get("X-GitHub-Delivery")
	if delivery == "" {
		delivery = uuid.NewString()
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		log.Printf("[server] delivery %s: failed to read body: %v", delivery, err)
		http.Error(w, dispatch.ErrNoPayload.Error(), http.StatusBadRequest)
		return
	}

	event, err := dispatch.ParseEvent(body)
	if err != nil {
		log.Printf("[server] delivery %s: %v", delivery, err)
		http.Error(w, dispatch.ErrNoPayload.Error(), http.StatusBadRequest)
		return
	}

	err = s.dispatcher.Dispatch(r.Context(), event)

	var remoteErr *github.RemoteError
	switch {
	case errors.As(err, &remoteErr):
		log.Printf("[server] delivery %s: remote failure: %v", delivery, err)
		http.Error(w, "upstream error", http.StatusBadGateway)
	case err != nil:
		log.Printf("[server] delivery %s: dispatch failed: %v", delivery, err)
		http.Error(w, "unable to process payload", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("beep boop")); err != nil {
			log.Printf("[server] delivery %s: failed to write response: %v", delivery, err)
		}
	}
}
