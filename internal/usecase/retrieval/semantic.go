package retrieval

import (
	"math"
	"sort"

	"github.com/askshelf/askshelf/internal/domain/item"
)

// CosineSimilarity is the dot product over the product of magnitudes.
// Returns 0 on dimension mismatch or when either vector has zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// semanticCandidates scores every item carrying a trusted embedding against
// the query vector and keeps the top cap. The cap bounds fusion work and is
// independent of the final result size.
func semanticCandidates(queryVec []float32, items []item.Item, model string, dim, limit int) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for i := range items {
		if !items[i].HasValidEmbedding(model, dim) {
			continue
		}
		candidates = append(candidates, Candidate{
			Item:  items[i],
			Score: CosineSimilarity(queryVec, items[i].Embedding()),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Item.ID() < candidates[j].Item.ID()
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
