package catalog

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/askshelf/askshelf/internal/domain/item"
)

// Hash field names. The FT index schema in EnsureIndex must stay in sync.
const (
	fieldTitle          = "title"
	fieldAuthor         = "author"
	fieldCopies         = "copies"
	fieldAvailable      = "available"
	fieldLocation       = "location"
	fieldMaxPages       = "max_pages"
	fieldEmbedding      = "embedding"
	fieldEmbeddingModel = "embedding_model"
)

// buildHashFields converts an Item into a flat map[string]string for HSET.
func buildHashFields(it *item.Item) map[string]string {
	m := map[string]string{
		fieldTitle:     it.Title(),
		fieldAuthor:    it.Author(),
		fieldCopies:    strconv.Itoa(it.Copies()),
		fieldAvailable: boolTag(it.Available()),
		fieldLocation:  it.Location(),
	}
	if it.MaxPages() > 0 {
		m[fieldMaxPages] = strconv.Itoa(it.MaxPages())
	}
	if len(it.Embedding()) > 0 {
		m[fieldEmbedding] = vectorToBytes(it.Embedding())
		m[fieldEmbeddingModel] = it.EmbeddingModel()
	}
	return m
}

// embeddingFields returns only the embedding fields, for write-back without
// touching catalog data.
func embeddingFields(it *item.Item) map[string]string {
	return map[string]string{
		fieldEmbedding:      vectorToBytes(it.Embedding()),
		fieldEmbeddingModel: it.EmbeddingModel(),
	}
}

// parseHashFields converts a flat hash map back into an Item. Absent or
// malformed numeric fields collapse to zero rather than failing hydration.
func parseHashFields(id string, m map[string]string) item.Item {
	copies, _ := strconv.Atoi(m[fieldCopies])
	if copies < 0 {
		copies = 0
	}
	maxPages, _ := strconv.Atoi(m[fieldMaxPages])
	if maxPages < 0 {
		maxPages = 0
	}

	var embedding []float32
	if raw, ok := m[fieldEmbedding]; ok {
		embedding = bytesToVector(raw)
	}

	return item.Reconstruct(
		id,
		m[fieldTitle],
		m[fieldAuthor],
		copies,
		m[fieldAvailable] == "true",
		m[fieldLocation],
		maxPages,
		embedding,
		m[fieldEmbeddingModel],
	)
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
