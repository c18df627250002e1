package server

import (
	"encoding/json"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fluentsearch/fluent/internal/models"
	"github.com/fluentsearch/fluent/pkg/utils"
)

const welcomePage = "<html><body><h1>Welcome to Fluent</h1></body></html>"

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	standardHeaders(w, "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomePage))
}

// handlePreflight validates the model name for CORS preflight requests and
// returns an empty body with the CORS header set.
func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	standardHeaders(w, "application/json; charset=UTF-8")
	corsHeaders(w)
	name := s.modelName(r)
	if !s.registry.Has(name) {
		s.respondError(w, http.StatusNotFound, name+" model not found")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleQuery serves POST /fluent and /fluent/{modelName}. An empty body
// returns the full corpus listing in load order with zero scores; a
// non-empty body is run as a query against the named model.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	standardHeaders(w, "application/json; charset=UTF-8")
	corsHeaders(w)

	name := s.modelName(r)
	if !s.registry.Has(name) {
		s.respondError(w, http.StatusNotFound, name+" model not found")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if len(body) == 0 {
		// No query: list every sample in corpus load order.
		samples := s.store.List()
		results := make([]models.Result, len(samples))
		for i, smp := range samples {
			results[i] = models.Result{ID: smp.ID, Text: smp.Text, Score: 0}
		}
		s.respondJSON(w, http.StatusOK, results)
		return
	}

	if !utf8.Valid(body) {
		s.respondError(w, http.StatusBadRequest, "invalid data: query must be a plain text string")
		return
	}

	query := string(body)
	s.logger.Debug("query request",
		zap.String("model", name),
		zap.String("query", utils.Truncate(query, 120)),
	)
	matches, err := s.registry.Query(r.Context(), name, query)
	if err != nil {
		s.logger.Error("query failed", zap.String("model", name), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results := make([]models.Result, 0, len(matches))
	for _, m := range matches {
		text, ok := s.store.Text(m.ID)
		if !ok {
			// Engines only rank corpus identifiers, so this is a bug.
			s.logger.Error("engine returned unknown sample id",
				zap.String("model", name), zap.String("id", m.ID))
			continue
		}
		results = append(results, models.Result{ID: m.ID, Text: text, Score: m.Score})
	}
	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	standardHeaders(w, "application/json; charset=UTF-8")
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"models":  s.registry.Names(),
		"samples": s.store.Len(),
	})
}

// modelName returns the model from the URL, or the registry default when omitted.
func (s *Server) modelName(r *http.Request) string {
	if name := chi.URLParam(r, "modelName"); name != "" {
		return name
	}
	return s.registry.DefaultName()
}

// standardHeaders adds the Content-Type and Server headers every response carries.
func standardHeaders(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Server", serverHeader)
}

// corsHeaders adds the CORS header set used on the API routes.
func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "accept, access-control-allow-origin, content-type")
	w.Header().Set("Access-Control-Allow-Credentials", "true")
	w.Header().Set("Access-Control-Allow-Methods", "POST")
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
