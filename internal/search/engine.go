// Package search implements the product locator search engine: tenant-scoped
// candidate selection, relevance scoring, ranking, and inventory overlay.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shelfscout/shelfscout/internal/models"
	"github.com/shelfscout/shelfscout/internal/ranking"
	"github.com/shelfscout/shelfscout/internal/storage"
)

// Engine runs product searches. It is stateless and request-scoped: every
// search is an independent computation over the catalog and inventory
// snapshots fetched for that request, so concurrent searches need no
// coordination.
type Engine struct {
	storage storage.Storage
	scorer  *ranking.Scorer
	config  *ranking.ScoringConfig
	logger  *zap.Logger
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(st storage.Storage, cfg *ranking.ScoringConfig, logger *zap.Logger) *Engine {
	if cfg == nil {
		cfg = ranking.DefaultScoringConfig()
	}
	cfg.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		storage: st,
		scorer:  ranking.NewScorer(cfg),
		config:  cfg,
		logger:  logger,
	}
}

// Search resolves the store's chain, selects chain-scoped candidates, scores
// and ranks them, and merges the store's inventory facts onto the result.
// A query that normalizes to nothing returns an empty list without touching
// storage. Errors are terminal for the request; cancellation via ctx yields
// no result, never a partial ranking.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) ([]models.LocatedProduct, error) {
	start := time.Now()

	query.Normalize()
	if query.IsVacuous() {
		return []models.LocatedProduct{}, nil
	}

	chainID, err := e.storage.ResolveStoreChain(ctx, query.StoreID)
	if err != nil {
		return nil, err
	}

	filter := buildCandidateFilter(query.NormalizedText, query.Tokens, e.config)
	candidates, err := e.storage.ListProducts(ctx, chainID, filter)
	if err != nil {
		return nil, fmt.Errorf("candidate fetch failed: %w", err)
	}

	scored := make([]ranking.ScoredProduct, 0, len(candidates))
	for _, p := range candidates {
		score := e.scorer.Score(query.NormalizedText, query.Tokens, ranking.Fields{
			Name:        p.Name,
			SKU:         p.SKU,
			Category:    p.Category,
			Description: p.Description,
		})
		scored = append(scored, ranking.ScoredProduct{Product: p, Score: score})
	}
	ranked := ranking.Rank(scored, e.config.ResultCap)

	if len(ranked) == 0 {
		return []models.LocatedProduct{}, nil
	}

	ids := make([]string, len(ranked))
	for i, c := range ranked {
		ids[i] = c.Product.ID
	}
	facts, err := e.storage.GetInventory(ctx, query.StoreID, ids)
	if err != nil {
		return nil, fmt.Errorf("inventory fetch failed: %w", err)
	}

	results := overlayInventory(ranked, facts)

	e.logger.Debug("search completed",
		zap.String("query", query.NormalizedText),
		zap.Int64("store_id", query.StoreID),
		zap.Int64("chain_id", chainID),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return results, nil
}
