// Package retrieval implements the hybrid search pipeline: lexical matching
// over the FT index fused with in-process semantic scoring.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
	"github.com/askshelf/askshelf/internal/lexicon"
	"github.com/askshelf/askshelf/internal/metrics"
)

// Default pipeline bounds.
const (
	DefaultTopN         = 5
	DefaultSemanticCap  = 20
	DefaultLexicalLimit = 50
)

// Params bounds the pipeline and identifies the trusted embedding model.
type Params struct {
	Model        string
	Dimensions   int
	TopN         int
	SemanticCap  int
	LexicalLimit int
}

// Service runs the hybrid retrieval pipeline for one query at a time. All
// state is read-only after construction; concurrent requests share nothing
// mutable beyond the lexicon snapshot.
type Service struct {
	catalog  Catalog
	embed    Embedder
	lexicons LexiconProvider
	fuser    Fuser
	params   Params
	logger   *zap.Logger
}

// New creates a retrieval service. Zero-valued bounds fall back to defaults.
func New(
	catalog Catalog, embed Embedder, lexicons LexiconProvider,
	fuser Fuser, params Params, logger *zap.Logger,
) *Service {
	if params.TopN <= 0 {
		params.TopN = DefaultTopN
	}
	if params.SemanticCap <= 0 {
		params.SemanticCap = DefaultSemanticCap
	}
	if params.LexicalLimit <= 0 {
		params.LexicalLimit = DefaultLexicalLimit
	}
	if fuser == nil {
		fuser = MaxFuser{}
	}
	return &Service{
		catalog:  catalog,
		embed:    embed,
		lexicons: lexicons,
		fuser:    fuser,
		params:   params,
		logger:   logger,
	}
}

// Retrieve runs the full pipeline for rawQuery. boostTerms join the text fed
// to expansion but not the text that gets embedded; the semantic path always
// scores the raw query as the user phrased it. A query that normalizes to
// nothing returns an empty result without touching the store.
//
// Store failures fail the request. An embedding failure only degrades the
// semantic path; the lexical ranking still answers.
func (s *Service) Retrieve(ctx context.Context, rawQuery string, boostTerms []string) ([]item.Item, error) {
	expandInput := rawQuery
	if len(boostTerms) > 0 {
		expandInput += " " + strings.Join(boostTerms, " ")
	}

	tokens := s.lexicons.Get().Expand(expandInput)
	if len(tokens) == 0 {
		return nil, nil
	}

	lexHits, err := s.catalog.LexicalSearch(ctx, lexicon.BuildFTQuery(tokens), s.params.LexicalLimit)
	if err != nil {
		s.logger.Error("Lexical search failed", zap.String("query", rawQuery), zap.Error(err))
		return nil, storeFailure("lexical search", err)
	}

	lexCands := lexicalCandidates(lexHits, tokens, IsCodingQuery(rawQuery))

	semCands, err := s.semanticPath(ctx, rawQuery)
	if err != nil {
		return nil, err
	}

	fused := s.fuser.Fuse(lexCands, semCands)
	return rank(fused, rawQuery, s.params.TopN), nil
}

// semanticPath embeds the raw query and scores the whole catalog. Returns a
// nil candidate list when the provider is down; returns an error only when
// the store itself fails.
func (s *Service) semanticPath(ctx context.Context, rawQuery string) ([]Candidate, error) {
	embRes, err := s.embed.Embed(ctx, rawQuery)
	if err != nil {
		s.logger.Warn("Semantic scoring degraded to lexical-only",
			zap.String("query", rawQuery), zap.Error(err))
		metrics.SemanticDegradedTotal.Inc()
		return nil, nil
	}

	items, err := s.catalog.All(ctx)
	if err != nil {
		s.logger.Error("Catalog bulk fetch failed", zap.String("query", rawQuery), zap.Error(err))
		return nil, storeFailure("bulk fetch", err)
	}

	return semanticCandidates(
		embRes.Embedding, items, s.params.Model, s.params.Dimensions, s.params.SemanticCap,
	), nil
}

// storeFailure maps store errors to ErrStoreUnavailable so callers can tell
// "could not search" apart from "zero items found".
func storeFailure(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
