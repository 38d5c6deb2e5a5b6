// Package chi is the hand-written HTTP transport for the askshelf API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
	healthuc "github.com/askshelf/askshelf/internal/usecase/health"
	rebuilduc "github.com/askshelf/askshelf/internal/usecase/rebuild"
)

const defaultPageSize = 20

// Asker answers catalog questions.
type Asker interface {
	Ask(ctx context.Context, rawQuery string) (domain.Answer, error)
}

// Catalog is the item store surface the transport exposes for ops.
type Catalog interface {
	All(ctx context.Context) ([]item.Item, error)
	Get(ctx context.Context, id string) (item.Item, error)
	Put(ctx context.Context, it item.Item) error
	Delete(ctx context.Context, id string) error
}

// Rebuilder refreshes the lexicon snapshot and embedding backfill.
type Rebuilder interface {
	Rebuild(ctx context.Context) (rebuilduc.Result, error)
}

// HealthChecker reports component availability.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the ask pipeline and catalog ops over HTTP.
type Server struct {
	ask           Asker
	catalog       Catalog
	rebuild       Rebuilder
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(ask Asker, catalog Catalog, rebuild Rebuilder, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		ask:     ask,
		catalog: catalog,
		rebuild: rebuild,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeEmptyQuery),
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, codeItemNotFound),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrRendererError, http.StatusBadGateway, codeRendererError),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Post("/ask", s.Ask)
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/rebuild", s.Rebuild)
	r.Get("/items", s.ListItems)
	r.Get("/items/{id}", s.GetItem)
	r.Put("/items/{id}", s.UpsertItem)
	r.Delete("/items/{id}", s.DeleteItem)
}

// Ask handles POST /ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.ask.Ask(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answerToResponse(answer))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Rebuild handles POST /rebuild.
func (s *Server) Rebuild(w http.ResponseWriter, r *http.Request) {
	result, err := s.rebuild.Rebuild(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RebuildResponse{
		Items:    result.Items,
		Embedded: result.Embedded,
		Skipped:  result.Skipped,
	})
}

// ListItems handles GET /items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	all, err := s.catalog.All(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })

	items := make([]ItemResponse, len(all))
	for i := range all {
		items[i] = itemToResponse(&all[i])
	}

	resp := paginateItems(items, r.URL.Query().Get("cursor"), r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, resp)
}

// GetItem handles GET /items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.catalog.Get(r.Context(), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemToResponse(&it))
}

// UpsertItem handles PUT /items/{id}.
func (s *Server) UpsertItem(w http.ResponseWriter, r *http.Request) {
	var req UpsertItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Item title is required")
		return
	}

	it, err := item.New(
		chirouter.URLParam(r, "id"),
		req.Title, req.Author, req.Copies, req.Available, req.Location, req.MaxPages,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	if err := s.catalog.Put(r.Context(), it); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemToResponse(&it))
}

// DeleteItem handles DELETE /items/{id}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chirouter.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrItemNotFound,
		domain.ErrStoreUnavailable,
		domain.ErrEmbeddingProviderError,
		domain.ErrRendererError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
