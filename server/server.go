// Package server exposes stream resolution and the relay over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/cinelink/cinelink/constant"
	"github.com/cinelink/cinelink/log"
	"github.com/cinelink/cinelink/metrics"
	"github.com/cinelink/cinelink/resolve"
	"github.com/cinelink/cinelink/source"
	"github.com/gorilla/mux"
)

// Resolver is the part of resolve.Service the server needs.
type Resolver interface {
	Streams(ctx context.Context, creds source.Credentials, kind source.Kind, externalID string) resolve.Response
}

// Server routes requests to a Resolver and a relay handler.
type Server struct {
	resolver Resolver
	relay    http.Handler
}

func New(resolver Resolver, relay http.Handler) *Server {
	return &Server{resolver: resolver, relay: relay}
}

// Router returns the route table:
//
//	GET /relay?url=
//	GET /stream/{type}/{id}.json   credentials via HTTP Basic auth
//	GET /health
//	GET /metrics
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.Handle("/relay", s.relay).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/stream/{type}/{id}.json", s.handleStreams).Methods(http.MethodGet)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

func (s *Server) handleStreams(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := source.ParseKind(vars["type"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, resolve.Response{
			Streams: []source.StreamLink{},
			Message: err.Error(),
		})
		return
	}

	var creds source.Credentials
	if user, pass, ok := r.BasicAuth(); ok {
		creds = source.Credentials{Username: user, Password: pass}
	}

	resp := s.resolver.Streams(r.Context(), creds, kind, vars["id"])
	if resp.Streams == nil {
		resp.Streams = []source.StreamLink{}
	}

	if resolve.IsAuthProblem(resp.Err) {
		w.Header().Set("WWW-Authenticate", `Basic realm="`+constant.Cinelink+`"`)
	}

	// resolution failures are part of the payload, not the status
	writeJSON(w, http.StatusOK, resp)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": constant.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("write response: %s", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if strings.HasPrefix(path, "/relay") {
			// the query holds the relayed url
			path = "/relay"
		}

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
