// Package server exposes the dictionary as a JSON API over HTTP.
//
// Reads and suggestion submission are public. Every other mutation needs an
// admin session obtained from POST /api/auth.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/rnwolfe/lexi/internal/auth"
	"github.com/rnwolfe/lexi/internal/dict"
)

// maxBody caps request bodies. Entries are a few short strings.
const maxBody = 64 << 10

// Options tune a Server.
type Options struct {
	// Collation orders listings by primary text. Zero means English.
	Collation language.Tag
	// Logger receives one line per request. Nil discards.
	Logger *log.Logger
	// SecureCookies marks the session cookie Secure (serve behind TLS).
	SecureCookies bool
}

// Server routes API requests to the dictionary stores.
type Server struct {
	entries     *dict.Store
	suggestions *dict.SuggestionStore
	gate        *auth.Gate
	opts        Options
	mux         *http.ServeMux
}

// New wires the API routes.
func New(entries *dict.Store, suggestions *dict.SuggestionStore, gate *auth.Gate, opts Options) *Server {
	if opts.Collation == (language.Tag{}) {
		opts.Collation = language.English
	}
	s := &Server{
		entries:     entries,
		suggestions: suggestions,
		gate:        gate,
		opts:        opts,
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/entries", s.listEntries)
	s.mux.HandleFunc("POST /api/entries", s.admin(s.createEntry))
	s.mux.HandleFunc("GET /api/entries/{id}", s.getEntry)
	s.mux.HandleFunc("PUT /api/entries/{id}", s.admin(s.updateEntry))
	s.mux.HandleFunc("DELETE /api/entries/{id}", s.admin(s.deleteEntry))

	s.mux.HandleFunc("POST /api/suggestions", s.submitSuggestion)
	s.mux.HandleFunc("GET /api/suggestions", s.admin(s.listSuggestions))
	s.mux.HandleFunc("POST /api/suggestions/{id}", s.admin(s.approveSuggestion))
	s.mux.HandleFunc("DELETE /api/suggestions/{id}", s.admin(s.discardSuggestion))

	s.mux.HandleFunc("POST /api/auth", s.login)
	s.mux.HandleFunc("GET /api/auth", s.authStatus)
	s.mux.HandleFunc("DELETE /api/auth", s.logout)

	return s
}

// Handler returns the routed API with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if s.opts.Logger != nil {
			s.opts.Logger.Info("listening", "addr", addr, "admin", s.gate.Enabled())
		}
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// entryRequest is the body of entry and suggestion writes. The legacy en/es
// keys are accepted for clients of the original API.
type entryRequest struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	En        string `json:"en"`
	Es        string `json:"es"`
	Notes     string `json:"notes"`
}

func (r entryRequest) texts() (primary, secondary string) {
	primary, secondary = r.Primary, r.Secondary
	if strings.TrimSpace(primary) == "" {
		primary = r.En
	}
	if strings.TrimSpace(secondary) == "" {
		secondary = r.Es
	}
	return primary, secondary
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	all, err := s.entries.List()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	if q.Get("grouped") == "1" || q.Get("grouped") == "true" {
		groups := dict.GroupByLetterIn(s.opts.Collation, dict.Search(q.Get("q"), all))
		if groups == nil {
			groups = []dict.Group{}
		}
		s.writeJSON(w, http.StatusOK, groups)
		return
	}

	// Sorting first makes equal scores fall back to alphabetical order.
	sorted := dict.SortByPrimary(s.opts.Collation, all)
	if strings.TrimSpace(q.Get("q")) == "" {
		s.writeJSON(w, http.StatusOK, sorted)
		return
	}
	if q.Get("scores") == "1" {
		s.writeJSON(w, http.StatusOK, dict.Rank(q.Get("q"), sorted))
		return
	}
	s.writeJSON(w, http.StatusOK, dict.Search(q.Get("q"), sorted))
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.entries.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !s.decode(w, r, &req) {
		return
	}
	primary, secondary := req.texts()
	e, err := s.entries.Add(primary, secondary, req.Notes)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !s.decode(w, r, &req) {
		return
	}
	primary, secondary := req.texts()
	e, err := s.entries.Update(r.PathValue("id"), primary, secondary, req.Notes)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.entries.Delete(r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeOK(w)
}

func (s *Server) submitSuggestion(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !s.decode(w, r, &req) {
		return
	}
	primary, secondary := req.texts()
	sg, err := s.suggestions.Submit(primary, secondary, req.Notes)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sg)
}

func (s *Server) listSuggestions(w http.ResponseWriter, r *http.Request) {
	list, err := s.suggestions.List()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) approveSuggestion(w http.ResponseWriter, r *http.Request) {
	e, err := s.suggestions.Approve(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

func (s *Server) discardSuggestion(w http.ResponseWriter, r *http.Request) {
	if err := s.suggestions.Discard(r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeOK(w)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if !s.gate.Enabled() {
		s.writeError(w, http.StatusInternalServerError, "admin password not configured")
		return
	}
	var body struct {
		Password string `json:"password"`
	}
	if !s.decode(w, r, &body) {
		return
	}
	if !s.gate.CheckPassword(body.Password) {
		if s.opts.Logger != nil {
			s.opts.Logger.Warn("failed login", "remote", r.RemoteAddr)
		}
		s.writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}
	token, err := s.gate.Issue()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.SetCookie(w, s.gate.Cookie(token, s.opts.SecureCookies))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"expiresIn": int(s.gate.MaxAge() / time.Second),
	})
}

func (s *Server) authStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"authenticated": s.gate.Authenticated(r)})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearCookie())
	s.writeOK(w)
}

// admin rejects requests without a valid session.
func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.gate.Authenticated(r) {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// fail maps store errors to status codes. Unexpected errors are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dict.ErrRequired):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dict.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	default:
		if s.opts.Logger != nil {
			s.opts.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		}
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.opts.Logger != nil {
		s.opts.Logger.Error("writing response", "status", status, "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeOK(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
