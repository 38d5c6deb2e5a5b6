// Package catalog persists library items as Redis hashes under an FT index.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/askshelf/askshelf/internal/db"
	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
)

// store is the consumer interface for the catalog (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements the catalog access the retrieval and ask usecases consume.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a catalog repository. keyPrefix namespaces every key and the
// FT index ("askshelf:").
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Put creates or replaces an item.
func (r *Repo) Put(ctx context.Context, it item.Item) error {
	if err := r.store.HSet(ctx, r.itemKey(it.ID()), buildHashFields(&it)); err != nil {
		return fmt.Errorf("hset %s: %w", r.itemKey(it.ID()), err)
	}
	return nil
}

// Get returns an item by ID. A missing key hydrates to an empty hash in
// Redis, which maps to ErrItemNotFound.
func (r *Repo) Get(ctx context.Context, id string) (item.Item, error) {
	key := r.itemKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return item.Item{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return item.Item{}, domain.ErrItemNotFound
	}
	return parseHashFields(id, fields), nil
}

// All returns every item in the catalog. The scan is unordered; callers that
// need determinism sort downstream.
func (r *Repo) All(ctx context.Context) ([]item.Item, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"item:*")
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	items := make([]item.Item, 0, len(keys))
	for i, fields := range hashes {
		if len(fields) == 0 {
			continue
		}
		items = append(items, parseHashFields(r.itemID(keys[i]), fields))
	}
	return items, nil
}

// LexicalSearch runs a RediSearch query against the catalog index and returns
// the matching items. The query string is already in FT syntax.
func (r *Repo) LexicalSearch(ctx context.Context, query string, limit int) ([]item.Item, error) {
	result, err := r.store.SearchList(ctx, r.indexName(), query, 0, limit, nil)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, fmt.Errorf("lexical search: %w", domain.ErrStoreUnavailable)
		}
		return nil, fmt.Errorf("lexical search: %w", err)
	}
	if result == nil || len(result.Entries) == 0 {
		return nil, nil
	}

	items := make([]item.Item, 0, len(result.Entries))
	for _, entry := range result.Entries {
		items = append(items, parseHashFields(r.itemID(entry.Key), entry.Fields))
	}
	return items, nil
}

// Count returns the number of indexed items.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.itemKey(id)); err != nil {
		return fmt.Errorf("del %s: %w", r.itemKey(id), err)
	}
	return nil
}

// PutEmbeddings writes cached embedding vectors back to the item hashes in
// one pipelined round trip, leaving the catalog fields untouched.
func (r *Repo) PutEmbeddings(ctx context.Context, items []item.Item) error {
	if len(items) == 0 {
		return nil
	}
	batch := make([]db.HashSetItem, 0, len(items))
	for i := range items {
		batch = append(batch, db.HashSetItem{
			Key:    r.itemKey(items[i].ID()),
			Fields: embeddingFields(&items[i]),
		})
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("hset multi embeddings: %w", err)
	}
	return nil
}

// EnsureIndex creates the catalog FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	name := r.indexName()

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(name).
		Prefix(r.keyPrefix + "item:").
		Text(fieldTitle).
		Text(fieldAuthor).
		Numeric(fieldCopies).
		Numeric(fieldMaxPages).
		Tag(fieldAvailable).
		Tag(fieldLocation).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

func (r *Repo) itemKey(id string) string {
	return r.keyPrefix + "item:" + id
}

func (r *Repo) itemID(key string) string {
	return strings.TrimPrefix(key, r.keyPrefix+"item:")
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "items:idx"
}
