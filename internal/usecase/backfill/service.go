// Package backfill computes and stores embeddings for catalog items that
// lack a trusted vector.
package backfill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
)

// Catalog is the storage contract for embedding write-back.
type Catalog interface {
	All(ctx context.Context) ([]item.Item, error)
	PutEmbeddings(ctx context.Context, items []item.Item) error
}

// Embedder vectorizes item texts in batches.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// Result summarizes one backfill run.
type Result struct {
	Scanned  int
	Embedded int
	Skipped  int
}

// Service backfills missing or stale item embeddings. Concurrent readers may
// see items without vectors mid-run; those items are simply not semantically
// scorable until the write-back lands.
type Service struct {
	catalog    Catalog
	embed      Embedder
	model      string
	dimensions int
	logger     *zap.Logger
}

// New creates a backfill service. model and dimensions define which cached
// vectors are trusted; anything else is recomputed.
func New(catalog Catalog, embed Embedder, model string, dimensions int, logger *zap.Logger) *Service {
	return &Service{
		catalog:    catalog,
		embed:      embed,
		model:      model,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Run scans the catalog, embeds every item without a trusted vector, and
// writes the vectors back in one batch.
func (s *Service) Run(ctx context.Context) (Result, error) {
	all, err := s.catalog.All(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("backfill fetch: %w", err)
	}

	var stale []item.Item
	for i := range all {
		if !all[i].HasValidEmbedding(s.model, s.dimensions) {
			stale = append(stale, all[i])
		}
	}

	result := Result{Scanned: len(all)}
	if len(stale) == 0 {
		return result, nil
	}

	texts := make([]string, len(stale))
	for i := range stale {
		texts[i] = stale[i].EmbeddingText()
	}

	batch, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return result, fmt.Errorf("backfill embed: %w", err)
	}
	if len(batch.Embeddings) != len(stale) {
		return result, fmt.Errorf("backfill embed: got %d vectors for %d items",
			len(batch.Embeddings), len(stale))
	}

	updated := make([]item.Item, 0, len(stale))
	for i := range stale {
		vec := batch.Embeddings[i]
		if vec == nil {
			result.Skipped++
			continue
		}
		updated = append(updated, stale[i].WithEmbedding(vec, s.model))
	}

	if len(updated) > 0 {
		if err := s.catalog.PutEmbeddings(ctx, updated); err != nil {
			return result, fmt.Errorf("backfill write-back: %w", err)
		}
	}
	result.Embedded = len(updated)

	s.logger.Info("Embedding backfill completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("embedded", result.Embedded),
		zap.Int("skipped", result.Skipped),
		zap.Int("tokens", batch.TotalTokens),
	)
	return result, nil
}
