// Package server exposes the read-only aggregation endpoints. The order
// table is injected at construction and only ever read, so every handler is
// reentrant without locking.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"basket-kpis-go/internal/analytics"
	"basket-kpis-go/internal/dataset"
	"basket-kpis-go/internal/logger"
	"basket-kpis-go/internal/types"
)

const limitMessage = "Invalid query parameter: limit must be between 1 and 100"

const defaultLimit = 10

type Server struct {
	table *dataset.Table
	log   *logger.Logger
	mux   *http.ServeMux
}

func New(table *dataset.Table) *Server {
	s := &Server{
		table: table,
		log:   logger.New(),
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/kpis", s.handleKPIs)
	s.mux.HandleFunc("/categories/top", s.handleTopCategories)
	s.mux.HandleFunc("/orders/distribution", s.handleDistribution)
	s.mux.HandleFunc("/", s.handleNotFound)
	return s
}

// handleNotFound keeps unknown paths inside the JSON error envelope instead
// of the mux's plain-text 404.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Warn("unknown path")
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "kpis")
	if !s.requireGet(w, r) {
		return
	}
	if !s.requireData(w, reqLog) {
		return
	}
	writeJSON(w, http.StatusOK, analytics.BasketKPIs(s.table))
	reqLog.Info("kpis served")
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "top_categories")
	if !s.requireGet(w, r) {
		return
	}
	// Validate at the boundary so a bad limit is a 400 regardless of any
	// later failure.
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			reqLog.WithField("limit", raw).Warn("rejected limit parameter")
			writeError(w, http.StatusBadRequest, limitMessage)
			return
		}
		limit = n
	}
	if !s.requireData(w, reqLog) {
		return
	}

	writeJSON(w, http.StatusOK, analytics.TopCategories(s.table, limit))
	reqLog.WithField("limit", limit).Info("top categories served")
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "distribution")
	if !s.requireGet(w, r) {
		return
	}
	if !s.requireData(w, reqLog) {
		return
	}
	writeJSON(w, http.StatusOK, analytics.OrderDistribution(s.table))
	reqLog.Info("order distribution served")
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// requireData guards against serving before initialization finished. With
// the normal startup sequence this never fires; it exists so a wiring bug
// surfaces as a clean 500 instead of a panic.
func (s *Server) requireData(w http.ResponseWriter, reqLog *logrus.Entry) bool {
	if s.table == nil {
		reqLog.Error("order table not loaded")
		writeError(w, http.StatusInternalServerError, "Data not loaded")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.ErrorResponse{Status: "error", Message: message})
}
