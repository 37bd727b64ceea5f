package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/storage"
)

// searchRequest mirrors models.SearchQuery but decodes the query field as a
// pointer, so a genuinely absent field (invalid argument) is distinguishable
// from an empty or whitespace-only query (a valid vacuous request).
type searchRequest struct {
	Query   *string `json:"query"`
	StoreID int64   `json:"storeId"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == nil {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	query := &models.SearchQuery{Query: *req.Query, StoreID: req.StoreID}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int64("store_id", query.StoreID))

	results, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.respondSearchError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, results)
}

// respondSearchError maps engine errors onto HTTP statuses: unknown store is
// the caller's fault, a missing similarity function is a deployment defect,
// and everything else is internal.
func (s *Server) respondSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrStoreNotFound):
		s.respondError(w, http.StatusNotFound, "store not found")
	case errors.Is(err, storage.ErrSimilarityUnavailable):
		s.logger.Error("similarity function unavailable", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, "similarity support unavailable")
	default:
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chains, err := s.storage.CountChains(ctx)
	if err != nil {
		s.logger.Error("status: count chains failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stores, err := s.storage.CountStores(ctx)
	if err != nil {
		s.logger.Error("status: count stores failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	products, err := s.storage.CountProducts(ctx)
	if err != nil {
		s.logger.Error("status: count products failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"chains":   chains,
		"stores":   stores,
		"products": products,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
