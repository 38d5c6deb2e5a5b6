// Package ask routes a natural-language query to the path that answers it:
// exact aggregate arithmetic, a casual short-circuit, or hybrid retrieval.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
	"github.com/askshelf/askshelf/internal/metrics"
)

// Service answers catalog questions.
type Service struct {
	retriever Retriever
	catalog   Catalog
	lexicons  LexiconProvider
	renderer  domain.Renderer
	logger    *zap.Logger
}

// New creates the ask service. renderer may be nil; replies then always use
// the deterministic rendering.
func New(
	retriever Retriever, catalog Catalog, lexicons LexiconProvider,
	renderer domain.Renderer, logger *zap.Logger,
) *Service {
	return &Service{
		retriever: retriever,
		catalog:   catalog,
		lexicons:  lexicons,
		renderer:  renderer,
		logger:    logger,
	}
}

// Ask classifies the query and dispatches to the matching handler. Rules are
// evaluated in priority order; the first match wins.
func (s *Service) Ask(ctx context.Context, rawQuery string) (domain.Answer, error) {
	trimmed := strings.TrimSpace(rawQuery)
	if trimmed == "" {
		return domain.Answer{}, domain.ErrEmptyQuery
	}
	query := strings.ToLower(trimmed)

	answer, err := s.route(ctx, trimmed, query)
	if err != nil {
		return domain.Answer{}, err
	}

	metrics.QueriesTotal.WithLabelValues(string(answer.Intent)).Inc()
	s.logger.Info("Query answered",
		zap.String("intent", string(answer.Intent)),
		zap.Int("results", answer.ResultsFound),
	)
	return answer, nil
}

func (s *Service) route(ctx context.Context, raw, query string) (domain.Answer, error) {
	if subject, ok := matchCopiesOf(query); ok {
		return s.handleCopies(ctx, subject)
	}
	if subject, ok := matchAvailability(query); ok {
		return s.handleAvailability(ctx, subject)
	}
	if kind, topic := matchAggregate(query); kind != aggNone {
		return s.handleAggregate(ctx, kind, topic)
	}
	if isCasual(query) {
		return domain.Answer{Reply: casualReply, Intent: domain.IntentCasual}, nil
	}
	return s.handleRetrieval(ctx, raw, query)
}

// handleCopies retrieves the subject and sums copies across the matches.
func (s *Service) handleCopies(ctx context.Context, subject string) (domain.Answer, error) {
	items, err := s.retriever.Retrieve(ctx, subject, nil)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("copies lookup %q: %w", subject, err)
	}

	var reply string
	if len(items) == 0 {
		reply = fmt.Sprintf("No books matching %q were found in the catalog.", subject)
	} else {
		reply = fmt.Sprintf("We hold %d copies across %d matching titles for %q.",
			sumCopies(items), len(items), subject)
	}

	return domain.Answer{
		Reply:        reply,
		Intent:       domain.IntentCopies,
		ResultsFound: len(items),
		Items:        items,
	}, nil
}

// handleAvailability retrieves the subject and partitions matches into
// available and total.
func (s *Service) handleAvailability(ctx context.Context, subject string) (domain.Answer, error) {
	items, err := s.retriever.Retrieve(ctx, subject, nil)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("availability lookup %q: %w", subject, err)
	}

	var reply string
	if len(items) == 0 {
		reply = fmt.Sprintf("No books matching %q were found in the catalog.", subject)
	} else {
		available := filterAvailable(items)
		reply = fmt.Sprintf(
			"%d of %d matching titles are available right now (%d of %d copies).",
			len(available), len(items), sumCopies(available), sumCopies(items))
	}

	return domain.Answer{
		Reply:        reply,
		Intent:       domain.IntentAvailability,
		ResultsFound: len(items),
		Items:        items,
	}, nil
}

// handleAggregate computes an exact integer answer over the full item set,
// bypassing ranking entirely.
func (s *Service) handleAggregate(ctx context.Context, kind aggregateKind, topic string) (domain.Answer, error) {
	all, err := s.catalog.All(ctx)
	if err != nil {
		s.logger.Error("Aggregate bulk fetch failed", zap.Error(err))
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return domain.Answer{}, fmt.Errorf("aggregate fetch: %w", err)
	}

	var reply string
	switch kind {
	case aggAvailableCount:
		reply = fmt.Sprintf("%d of %d titles are currently available.",
			len(filterAvailable(all)), len(all))
	case aggTotalTitles:
		reply = fmt.Sprintf("The catalog holds %d titles in total.", len(all))
	case aggTotalCopies:
		reply = fmt.Sprintf("The catalog holds %d copies across %d titles.",
			sumCopies(all), len(all))
	case aggTopicCount:
		n := s.countTopic(all, topic)
		reply = fmt.Sprintf("There are %d %s books in the catalog.", n, topic)
	default:
		return domain.Answer{}, fmt.Errorf("unknown aggregate kind %d", kind)
	}

	return domain.Answer{
		Reply:        reply,
		Intent:       domain.IntentAggregate,
		ResultsFound: len(all),
	}, nil
}

// countTopic expands the topic into alias tokens and counts items whose
// title or author contains any alias.
func (s *Service) countTopic(all []item.Item, topic string) int {
	aliases := s.lexicons.Get().Expand(topic)
	if len(aliases) == 0 {
		aliases = []string{strings.ToLower(topic)}
	}

	count := 0
	for i := range all {
		haystack := all[i].SearchText()
		for _, alias := range aliases {
			if strings.Contains(haystack, alias) {
				count++
				break
			}
		}
	}
	return count
}

// handleRetrieval runs the full hybrid pipeline with hint boosts, the
// optional page ceiling, and final dedupe, then phrases the reply.
func (s *Service) handleRetrieval(ctx context.Context, raw, query string) (domain.Answer, error) {
	items, err := s.retriever.Retrieve(ctx, raw, hintBoosts(query))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve %q: %w", raw, err)
	}

	if limit, ok := parsePageLimit(query); ok {
		items = filterByPages(items, limit)
	}
	items = dedupe(items)

	return domain.Answer{
		Reply:        s.render(ctx, items, raw),
		Intent:       domain.IntentRetrieval,
		ResultsFound: len(items),
		Items:        items,
	}, nil
}

// render asks the renderer to phrase the reply and falls back to the
// deterministic rendering when it fails. The item list is already final; a
// renderer failure never changes what was found.
func (s *Service) render(ctx context.Context, items []item.Item, raw string) string {
	if s.renderer != nil {
		reply, err := s.renderer.Format(ctx, items, raw)
		if err == nil {
			return reply
		}
		s.logger.Warn("Renderer failed, using deterministic reply",
			zap.String("query", raw), zap.Error(err))
	}
	metrics.RendererFallbackTotal.Inc()
	return fallbackReply(items)
}

func fallbackReply(items []item.Item) string {
	if len(items) == 0 {
		return "No matching books were found in the catalog."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching titles:", len(items))
	for i := range items {
		it := &items[i]
		state := "available"
		if !it.Available() {
			state = "not available"
		}
		fmt.Fprintf(&b, "\n- %q by %s (%d copies, %s)", it.Title(), it.Author(), it.Copies(), state)
	}
	return b.String()
}

// filterByPages keeps items at or under the ceiling. Items without a known
// page count are excluded from page-filtered results.
func filterByPages(items []item.Item, limit int) []item.Item {
	filtered := items[:0]
	for i := range items {
		if items[i].MaxPages() > 0 && items[i].MaxPages() <= limit {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

// dedupe keeps the first item per normalized (title, author) pair and drops
// items with an empty title.
func dedupe(items []item.Item) []item.Item {
	seen := make(map[string]struct{}, len(items))
	deduped := items[:0]
	for i := range items {
		if strings.TrimSpace(items[i].Title()) == "" {
			continue
		}
		key := items[i].DedupeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, items[i])
	}
	return deduped
}

func sumCopies(items []item.Item) int {
	total := 0
	for i := range items {
		total += items[i].Copies()
	}
	return total
}

func filterAvailable(items []item.Item) []item.Item {
	available := make([]item.Item, 0, len(items))
	for i := range items {
		if items[i].Available() {
			available = append(available, items[i])
		}
	}
	return available
}
