package ask

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain/item"
	"github.com/askshelf/askshelf/internal/lexicon"
)

type mockRetriever struct {
	items       []item.Item
	err         error
	calls       int
	lastQuery   string
	lastBoosts  []string
	retrieverFn func(ctx context.Context, rawQuery string, boostTerms []string) ([]item.Item, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, rawQuery string, boostTerms []string) ([]item.Item, error) {
	m.calls++
	m.lastQuery = rawQuery
	m.lastBoosts = boostTerms
	if m.retrieverFn != nil {
		return m.retrieverFn(ctx, rawQuery, boostTerms)
	}
	return m.items, m.err
}

type mockCatalog struct {
	items []item.Item
	err   error
	calls int
}

func (m *mockCatalog) All(_ context.Context) ([]item.Item, error) {
	m.calls++
	return m.items, m.err
}

type mockRenderer struct {
	reply string
	err   error
	calls int
}

func (m *mockRenderer) Format(_ context.Context, _ []item.Item, _ string) (string, error) {
	m.calls++
	return m.reply, m.err
}

func testItem(t *testing.T, id, title, author string, copies int, available bool, maxPages int) item.Item {
	t.Helper()
	it, err := item.New(id, title, author, copies, available, "A1", maxPages)
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	return it
}

func newTestService(
	t *testing.T, retriever *mockRetriever, catalog *mockCatalog, renderer *mockRenderer,
) *Service {
	t.Helper()
	holder := lexicon.NewHolder(lexicon.Build(catalog.items))
	if renderer == nil {
		return New(retriever, catalog, holder, nil, zap.NewNop())
	}
	return New(retriever, catalog, holder, renderer, zap.NewNop())
}
