package chi

import (
	"context"
	"net/http"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
	healthuc "github.com/askshelf/askshelf/internal/usecase/health"
	rebuilduc "github.com/askshelf/askshelf/internal/usecase/rebuild"
)

type mockAsker struct {
	answer    domain.Answer
	err       error
	calls     int
	lastQuery string
}

func (m *mockAsker) Ask(_ context.Context, rawQuery string) (domain.Answer, error) {
	m.calls++
	m.lastQuery = rawQuery
	return m.answer, m.err
}

type mockCatalog struct {
	items    []item.Item
	allErr   error
	getErr   error
	putErr   error
	delErr   error
	lastPut  item.Item
	lastID   string
	putCalls int
	delCalls int
}

func (m *mockCatalog) All(_ context.Context) ([]item.Item, error) {
	return m.items, m.allErr
}

func (m *mockCatalog) Get(_ context.Context, id string) (item.Item, error) {
	m.lastID = id
	if m.getErr != nil {
		return item.Item{}, m.getErr
	}
	for _, it := range m.items {
		if it.ID() == id {
			return it, nil
		}
	}
	return item.Item{}, domain.ErrItemNotFound
}

func (m *mockCatalog) Put(_ context.Context, it item.Item) error {
	m.putCalls++
	m.lastPut = it
	return m.putErr
}

func (m *mockCatalog) Delete(_ context.Context, id string) error {
	m.delCalls++
	m.lastID = id
	return m.delErr
}

type mockRebuilder struct {
	result rebuilduc.Result
	err    error
	calls  int
}

func (m *mockRebuilder) Rebuild(_ context.Context) (rebuilduc.Result, error) {
	m.calls++
	return m.result, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

func testItem(t *testing.T, id, title, author string) item.Item {
	t.Helper()
	it, err := item.New(id, title, author, 2, true, "A1", 0)
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	return it
}

func healthyReport() healthuc.Report {
	return healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"store": healthuc.CheckOK},
	}
}

func newTestHandler(ask *mockAsker, catalog *mockCatalog, rebuild *mockRebuilder, health *mockHealth) http.Handler {
	if health == nil {
		health = &mockHealth{report: healthyReport()}
	}
	srv := NewServer(ask, catalog, rebuild, health, zap.NewNop())
	r := chirouter.NewRouter()
	srv.Register(r)
	return r
}
